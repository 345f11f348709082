// Package executors holds the table of built-in executor types. Registration
// is explicit: callers invoke RegisterBuiltins (or NewRegistry) instead of
// relying on package initialisation side effects.
package executors

import (
	"github.com/kilianp07/patterns/core/executor"
	"github.com/kilianp07/patterns/core/factory"
	"github.com/kilianp07/patterns/core/logger"
	"github.com/kilianp07/patterns/infra/localexec"
	"github.com/kilianp07/patterns/infra/sshexec"
)

// Registry maps executor type names to constructors.
type Registry = factory.Registry[executor.Executor]

// LoggerFactory returns the logger handed to executors of a given type.
type LoggerFactory func(component string) logger.Logger

// RegisterBuiltins registers the local and remote executors on reg.
func RegisterBuiltins(reg *Registry, newLogger LoggerFactory) error {
	if newLogger == nil {
		newLogger = func(string) logger.Logger { return logger.Nop{} }
	}
	if err := reg.Register(executor.TypeLocal, func(conf map[string]any) (executor.Executor, error) {
		e, err := localexec.New(conf, newLogger("local-executor"))
		if err != nil {
			return nil, err
		}
		return e, nil
	}); err != nil {
		return err
	}
	return reg.Register(executor.TypeRemote, func(conf map[string]any) (executor.Executor, error) {
		e, err := sshexec.New(conf, newLogger("remote-executor"))
		if err != nil {
			return nil, err
		}
		return e, nil
	})
}

// NewRegistry returns a registry holding the built-in executors. log receives
// the registry's own warnings.
func NewRegistry(log logger.Logger, newLogger LoggerFactory) (*Registry, error) {
	reg := factory.NewRegistry[executor.Executor](log)
	if err := RegisterBuiltins(reg, newLogger); err != nil {
		return nil, err
	}
	return reg, nil
}
