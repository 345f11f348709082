package metrics

import (
	"errors"

	"github.com/kilianp07/patterns/core/factory"
)

// NewSink creates a Sink from the provided configuration using the factories
// registered on reg. No configuration yields a NopSink.
func NewSink(reg *factory.Registry[Sink], cfgs []factory.ModuleConfig) (Sink, error) {
	if len(cfgs) == 0 {
		return NopSink{}, nil
	}
	if len(cfgs) == 1 {
		return reg.Create(cfgs[0])
	}
	sinks := make([]Sink, 0, len(cfgs))
	for _, c := range cfgs {
		s, err := reg.Create(c)
		if err != nil {
			if cerr := NewMultiSink(sinks...).Close(); cerr != nil {
				return nil, errors.Join(err, cerr)
			}
			return nil, err
		}
		sinks = append(sinks, s)
	}
	return NewMultiSink(sinks...), nil
}
