package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/syntax"

	"github.com/kilianp07/patterns/app"
	"github.com/kilianp07/patterns/core/executor"
)

func newExecCmd(opts *rootOptions) *cobra.Command {
	var (
		name    string
		timeout time.Duration
	)
	c := &cobra.Command{
		Use:   "exec [--executor NAME] -- COMMAND...",
		Short: "Run a command on an executor and relay its output",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			command, err := joinArgs(args)
			if err != nil {
				return err
			}
			return opts.withService(func(svc *app.Service) error {
				out, err := svc.Run(ctx, name, command)
				if err != nil {
					return err
				}
				if _, err := fmt.Fprint(cmd.OutOrStdout(), out.Stdout); err != nil {
					return err
				}
				if _, err := fmt.Fprint(cmd.ErrOrStderr(), out.Stderr); err != nil {
					return err
				}
				if out.Failed() {
					return &ExitCodeError{Code: out.ExitCode}
				}
				return nil
			})
		},
	}
	c.Flags().StringVarP(&name, "executor", "e", executor.TypeLocal, "executor profile or type")
	c.Flags().DurationVar(&timeout, "timeout", 0, "abort the command after this duration")
	return c
}

// joinArgs rebuilds a command line from argv, quoting each word so that
// shell word splitting on the executor side yields the same argv.
func joinArgs(args []string) (string, error) {
	words := make([]string, len(args))
	for i, a := range args {
		q, err := syntax.Quote(a, syntax.LangPOSIX)
		if err != nil {
			return "", fmt.Errorf("argument %d: %w", i, err)
		}
		words[i] = q
	}
	return strings.Join(words, " "), nil
}
