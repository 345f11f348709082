package metrics

import (
	"errors"
	"io"
)

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordExecution forwards the record to all sinks and joins their errors.
func (m *MultiSink) RecordExecution(rec ExecutionRecord) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordExecution(rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordLookup forwards the record to all sinks and joins their errors.
func (m *MultiSink) RecordLookup(rec LookupRecord) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordLookup(rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink implementing io.Closer and joins their errors.
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.Sinks {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
