package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/patterns/app/executors"
	"github.com/kilianp07/patterns/config"
	"github.com/kilianp07/patterns/core/executor"
	"github.com/kilianp07/patterns/core/factory"
	coremetrics "github.com/kilianp07/patterns/core/metrics"
	"github.com/kilianp07/patterns/core/model"
	"github.com/kilianp07/patterns/core/spec"
	"github.com/kilianp07/patterns/infra/logger"
	"github.com/kilianp07/patterns/infra/metrics"
	"github.com/kilianp07/patterns/internal/eventbus"
)

// Service wires the executor registry, the metrics sinks and the product
// catalog built from the configuration.
type Service struct {
	cfg       *config.Config
	executors *executors.Registry
	sink      coremetrics.Sink
	gatherer  prometheus.Gatherer
	bus       *eventbus.TypedBus[ExecutionEvent]
	products  []model.Product
	log       logger.Logger
	newLogger executors.LoggerFactory
}

// Option customises a Service.
type Option func(*Service)

// WithLoggerFactory sets the function building per-component loggers.
func WithLoggerFactory(f executors.LoggerFactory) Option {
	return func(s *Service) { s.newLogger = f }
}

// New creates a Service from the configuration.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}
	s := &Service{cfg: cfg, newLogger: logger.New}
	for _, o := range opts {
		o(s)
	}
	s.log = s.newLogger("service")

	reg, err := executors.NewRegistry(s.newLogger("executors"), s.newLogger)
	if err != nil {
		return nil, fmt.Errorf("executor registry: %w", err)
	}
	s.executors = reg

	if s.products, err = cfg.Catalog.Build(); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	promReg := prometheus.NewRegistry()
	s.gatherer = promReg
	sinks := factory.NewRegistry[coremetrics.Sink](s.newLogger("metrics"))
	if err := metrics.RegisterSinks(sinks, promReg, s.newLogger("metrics")); err != nil {
		return nil, fmt.Errorf("metrics sinks: %w", err)
	}
	// sinks last: nothing after them can fail and leave them open
	if s.sink, err = coremetrics.NewSink(sinks, cfg.Metrics.Sinks); err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	s.bus = eventbus.NewTyped[ExecutionEvent]()
	return s, nil
}

// Registry exposes the executor registry so callers can add their own types.
func (s *Service) Registry() *executors.Registry { return s.executors }

// Profiles returns the configured executor profiles.
func (s *Service) Profiles() []config.ExecutorProfile { return slices.Clone(s.cfg.Executors) }

// Executor resolves name to an executor. A configured profile wins; otherwise
// name is taken as a registry type with default settings. Unknown names
// return an error wrapping factory.ErrNotFound.
func (s *Service) Executor(name string) (executor.Executor, error) {
	mod := factory.ModuleConfig{Type: name}
	if p, ok := s.cfg.Profile(name); ok {
		mod = p.Module()
	}
	e, err := s.executors.Create(mod)
	found := !errors.Is(err, factory.ErrNotFound)
	if rerr := s.sink.RecordLookup(coremetrics.LookupRecord{Name: name, Found: found}); rerr != nil {
		s.log.Warnf("record lookup: %v", rerr)
	}
	if err != nil {
		return nil, fmt.Errorf("executor %s: %w", name, err)
	}
	return &instrumented{
		name: name,
		typ:  mod.Type,
		next: e,
		sink: s.sink,
		bus:  s.bus,
		log:  s.log,
	}, nil
}

// Run executes command on the executor called name.
func (s *Service) Run(ctx context.Context, name, command string) (executor.Output, error) {
	e, err := s.Executor(name)
	if err != nil {
		return executor.Output{}, err
	}
	return e.Run(ctx, command)
}

// Products returns the catalog in configuration order.
func (s *Service) Products() []model.Product { return slices.Clone(s.products) }

// Filter returns the catalog products satisfying sp.
func (s *Service) Filter(sp spec.Specification[model.Product]) []model.Product {
	return spec.FilterSlice(s.products, sp)
}

// Events subscribes to execution events. The channel is closed by Close.
func (s *Service) Events() <-chan ExecutionEvent { return s.bus.Subscribe() }

// Close closes the event bus and the sinks, then writes the metrics textfile
// when configured.
func (s *Service) Close() error {
	s.bus.Close()
	if s.bus.Dropped() > 0 {
		s.log.Warnf("%d execution events dropped", s.bus.Dropped())
	}
	var errs []error
	if c, ok := s.sink.(io.Closer); ok {
		errs = append(errs, c.Close())
	}
	if path := s.cfg.Metrics.Textfile; path != "" {
		errs = append(errs, metrics.WriteTextfile(path, s.gatherer))
	}
	return errors.Join(errs...)
}
