package metrics

import "time"

// ExecutionRecord describes one finished Run call.
type ExecutionRecord struct {
	RunID    string
	Executor string // configured profile name
	Type     string // registry type, e.g. "local"
	Duration time.Duration
	ExitCode int
	// Err is set when the command could not be executed at all.
	Err  error
	Time time.Time
}

// Outcome classifies the record as "ok", "exit_nonzero" or "error".
func (r ExecutionRecord) Outcome() string {
	switch {
	case r.Err != nil:
		return "error"
	case r.ExitCode != 0:
		return "exit_nonzero"
	default:
		return "ok"
	}
}

// LookupRecord describes one executor lookup in the registry.
type LookupRecord struct {
	Name  string
	Found bool
}

// Sink records executions and lookups for observability purposes.
type Sink interface {
	RecordExecution(rec ExecutionRecord) error
	RecordLookup(rec LookupRecord) error
}

// NopSink discards all records.
type NopSink struct{}

func (NopSink) RecordExecution(ExecutionRecord) error { return nil }
func (NopSink) RecordLookup(LookupRecord) error       { return nil }
