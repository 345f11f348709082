package factory

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/go-viper/mapstructure/v2"

	"github.com/kilianp07/patterns/core/logger"
)

// ErrNotFound is returned by Create when no constructor is registered under
// the requested name.
var ErrNotFound = errors.New("not found in registry")

// ModuleConfig contains the type name and raw configuration for a module.
type ModuleConfig struct {
	Type string         `json:"type"`
	Conf map[string]any `json:"conf"`
}

// Factory constructs an implementation of T using the provided raw config.
type Factory[T any] func(map[string]any) (T, error)

// Registry stores factories keyed by module type.
type Registry[T any] struct {
	mu        sync.RWMutex
	factories map[string]Factory[T]
	log       logger.Logger
}

// NewRegistry returns an empty factory registry. A nil logger disables the
// warnings emitted on overwrite and lookup misses.
func NewRegistry[T any](log logger.Logger) *Registry[T] {
	return &Registry[T]{
		factories: make(map[string]Factory[T]),
		log:       logger.OrNop(log),
	}
}

// Register adds a factory for the given type name. An existing entry is
// replaced after a warning.
func (r *Registry[T]) Register(name string, f Factory[T]) error {
	if f == nil {
		return fmt.Errorf("factory nil for %s", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[name]; ok {
		r.log.Warnf("factory %s already registered, replacing it", name)
	}
	r.factories[name] = f
	return nil
}

// Create instantiates a module based on its configuration. Each call returns
// a new instance; the registry keeps no reference to it.
func (r *Registry[T]) Create(cfg ModuleConfig) (T, error) {
	r.mu.RLock()
	f, ok := r.factories[cfg.Type]
	r.mu.RUnlock()
	if !ok {
		r.log.Warnf("factory %s does not exist in the registry", cfg.Type)
		var zero T
		return zero, fmt.Errorf("module type %q: %w", cfg.Type, ErrNotFound)
	}
	conf := cfg.Conf
	if conf == nil {
		conf = map[string]any{}
	}
	return f(conf)
}

// Has reports whether a factory is registered under name.
func (r *Registry[T]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// Names returns the registered type names in lexical order.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Decode fills out the provided struct using json tags. String values are
// converted to the target field type so settings coming from environment
// variables decode into numbers and booleans.
func Decode(data map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(data)
}
