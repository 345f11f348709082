// Package executor defines the command execution capability shared by the
// local and remote executors.
package executor

import (
	"context"
	"fmt"
)

// Registered executor type names.
const (
	TypeLocal  = "local"
	TypeRemote = "remote"
)

// Executor runs a single command line and captures its output.
//
// A command that runs but exits with a non-zero status is not an error: its
// streams and ExitCode are returned in Output. Failures to start, reach or
// authenticate against the target are returned as *ExecError.
type Executor interface {
	Run(ctx context.Context, command string) (Output, error)
}

// Output holds the captured streams of one command.
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Failed reports whether the command exited with a non-zero status.
func (o Output) Failed() bool { return o.ExitCode != 0 }

// Operations reported in ExecError.Op.
const (
	OpParse     = "parse"
	OpSpawn     = "spawn"
	OpDial      = "dial"
	OpHandshake = "handshake"
	OpAuth      = "auth-config"
	OpSession   = "session"
	OpExec      = "exec"
)

// ExecError describes a command that could not be executed.
type ExecError struct {
	Executor string
	Op       string
	Command  string
	Err      error
}

func (e *ExecError) Error() string {
	if e.Command == "" {
		return fmt.Sprintf("%s executor: %s: %v", e.Executor, e.Op, e.Err)
	}
	return fmt.Sprintf("%s executor: %s %q: %v", e.Executor, e.Op, e.Command, e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }

// Func adapts a plain function to the Executor interface.
type Func func(ctx context.Context, command string) (Output, error)

// Run calls f.
func (f Func) Run(ctx context.Context, command string) (Output, error) { return f(ctx, command) }
