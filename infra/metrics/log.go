package metrics

import (
	"github.com/kilianp07/patterns/core/logger"
	coremetrics "github.com/kilianp07/patterns/core/metrics"
)

// LogSink writes every record as a structured debug log line.
type LogSink struct {
	log logger.Logger
}

// NewLogSink returns a sink logging through log.
func NewLogSink(log logger.Logger) *LogSink {
	return &LogSink{log: logger.OrNop(log)}
}

func (s *LogSink) RecordExecution(rec coremetrics.ExecutionRecord) error {
	fields := map[string]any{
		"run_id":      rec.RunID,
		"executor":    rec.Executor,
		"type":        rec.Type,
		"duration_ms": rec.Duration.Milliseconds(),
		"exit_code":   rec.ExitCode,
		"outcome":     rec.Outcome(),
	}
	if rec.Err != nil {
		fields["error"] = rec.Err.Error()
	}
	s.log.Debugw("execution", fields)
	return nil
}

func (s *LogSink) RecordLookup(rec coremetrics.LookupRecord) error {
	s.log.Debugw("executor lookup", map[string]any{"name": rec.Name, "found": rec.Found})
	return nil
}
