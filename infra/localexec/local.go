// Package localexec runs commands as child processes of the current program.
package localexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"mvdan.cc/sh/v3/shell"

	"github.com/kilianp07/patterns/core/executor"
	"github.com/kilianp07/patterns/core/factory"
	"github.com/kilianp07/patterns/core/logger"
)

// ErrEmptyCommand is returned when the command line contains no words.
var ErrEmptyCommand = errors.New("empty command")

// Config holds the optional settings of a local executor.
type Config struct {
	// Dir is the working directory of the child process. Empty means the
	// current directory.
	Dir string `json:"dir"`
	// Env lists extra KEY=VALUE pairs added to the inherited environment.
	// They are also visible to variable expansion in the command line.
	Env []string `json:"env"`
}

// Executor spawns the command directly, without an intermediate shell.
type Executor struct {
	cfg Config
	log logger.Logger
}

// New decodes conf into a Config and returns the executor.
func New(conf map[string]any, log logger.Logger) (*Executor, error) {
	var cfg Config
	if err := factory.Decode(conf, &cfg); err != nil {
		return nil, fmt.Errorf("local executor config: %w", err)
	}
	return NewExecutor(cfg, log), nil
}

// NewExecutor returns a local executor for cfg.
func NewExecutor(cfg Config, log logger.Logger) *Executor {
	return &Executor{cfg: cfg, log: logger.OrNop(log)}
}

// Run splits command with shell word rules and executes it. Stdin is not
// forwarded and no timeout is applied beyond ctx.
func (e *Executor) Run(ctx context.Context, command string) (executor.Output, error) {
	args, err := shell.Fields(command, e.lookupEnv)
	if err != nil {
		return executor.Output{}, e.fail(executor.OpParse, command, err)
	}
	if len(args) == 0 {
		return executor.Output{}, e.fail(executor.OpParse, command, ErrEmptyCommand)
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = e.cfg.Dir
	if len(e.cfg.Env) > 0 {
		cmd.Env = append(os.Environ(), e.cfg.Env...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.log.Debugw("spawning process", map[string]any{"argv": args, "dir": e.cfg.Dir})
	runErr := cmd.Run()
	out := executor.Output{
		Stdout: strings.ToValidUTF8(stdout.String(), "�"),
		Stderr: strings.ToValidUTF8(stderr.String(), "�"),
	}
	if runErr == nil {
		return out, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return out, e.fail(executor.OpExec, command, ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		out.ExitCode = exitCode(exitErr)
		return out, nil
	}
	return out, e.fail(executor.OpSpawn, command, runErr)
}

// exitCode follows the shell convention of 128+signal for a child killed by
// a signal, where os/exec reports -1.
func exitCode(err *exec.ExitError) int {
	if code := err.ExitCode(); code >= 0 {
		return code
	}
	if ws, ok := err.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return 1
}

// lookupEnv resolves variables from the configured Env first, then from the
// process environment.
func (e *Executor) lookupEnv(name string) string {
	prefix := name + "="
	for i := len(e.cfg.Env) - 1; i >= 0; i-- {
		if v, ok := strings.CutPrefix(e.cfg.Env[i], prefix); ok {
			return v
		}
	}
	return os.Getenv(name)
}

func (e *Executor) fail(op, command string, err error) error {
	return &executor.ExecError{Executor: executor.TypeLocal, Op: op, Command: command, Err: err}
}
