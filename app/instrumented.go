package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/patterns/core/executor"
	coremetrics "github.com/kilianp07/patterns/core/metrics"
	"github.com/kilianp07/patterns/infra/logger"
	"github.com/kilianp07/patterns/internal/eventbus"
)

// ExecutionEvent is published after every command run through the service.
type ExecutionEvent struct {
	Record  coremetrics.ExecutionRecord
	Command string
	Output  executor.Output
}

// instrumented decorates an executor with metrics, events and logging.
type instrumented struct {
	name string
	typ  string
	next executor.Executor
	sink coremetrics.Sink
	bus  *eventbus.TypedBus[ExecutionEvent]
	log  logger.Logger
}

func (e *instrumented) Run(ctx context.Context, command string) (executor.Output, error) {
	start := time.Now()
	out, err := e.next.Run(ctx, command)
	rec := coremetrics.ExecutionRecord{
		RunID:    uuid.NewString(),
		Executor: e.name,
		Type:     e.typ,
		Duration: time.Since(start),
		ExitCode: out.ExitCode,
		Err:      err,
		Time:     start,
	}
	if serr := e.sink.RecordExecution(rec); serr != nil {
		e.log.Warnf("record execution %s: %v", rec.RunID, serr)
	}
	e.bus.Publish(ExecutionEvent{Record: rec, Command: command, Output: out})
	e.log.Debugw("command finished", map[string]any{
		"run_id":    rec.RunID,
		"executor":  e.name,
		"outcome":   rec.Outcome(),
		"exit_code": out.ExitCode,
		"duration":  rec.Duration.String(),
	})
	return out, err
}
