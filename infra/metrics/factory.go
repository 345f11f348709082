package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/patterns/core/factory"
	"github.com/kilianp07/patterns/core/logger"
	coremetrics "github.com/kilianp07/patterns/core/metrics"
)

// RegisterSinks registers the built-in sinks: "nop", "prometheus" (on
// promReg), "log" (through log) and "jsonl" (rotating journal file).
func RegisterSinks(reg *factory.Registry[coremetrics.Sink], promReg prometheus.Registerer, log logger.Logger) error {
	builtins := map[string]factory.Factory[coremetrics.Sink]{
		"nop": func(map[string]any) (coremetrics.Sink, error) {
			return coremetrics.NopSink{}, nil
		},
		"prometheus": func(map[string]any) (coremetrics.Sink, error) {
			s, err := NewPromSinkWithRegistry(promReg)
			if err != nil {
				return nil, err
			}
			return s, nil
		},
		"log": func(map[string]any) (coremetrics.Sink, error) {
			return NewLogSink(log), nil
		},
		"jsonl": func(conf map[string]any) (coremetrics.Sink, error) {
			s, err := NewJSONLSink(conf)
			if err != nil {
				return nil, err
			}
			return s, nil
		},
	}
	for name, f := range builtins {
		if err := reg.Register(name, f); err != nil {
			return err
		}
	}
	return nil
}
