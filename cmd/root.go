package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/patterns/app"
	"github.com/kilianp07/patterns/config"
	"github.com/kilianp07/patterns/infra/logger"
)

type rootOptions struct {
	cfgPath  string
	logLevel string
	cfg      *config.Config
}

// ExitCodeError reports the non-zero exit status of a command run through
// the exec subcommand.
type ExitCodeError struct {
	Code int
}

func (e *ExitCodeError) Error() string { return fmt.Sprintf("command exited with status %d", e.Code) }

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ec *ExitCodeError
	if errors.As(err, &ec) && ec.Code > 0 {
		return ec.Code
	}
	return 1
}

// Execute runs the CLI.
func Execute() error { return newRootCmd().Execute() }

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "patterns",
		Short:         "Run commands through configured executors and filter the product catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if opts.logLevel != "" {
				cfg.Logging.Level = opts.logLevel
			}
			if err := logger.SetLevel(cfg.Logging.Level); err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&opts.cfgPath, "config", "c", "", "configuration file (yaml or json)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override logging.level")

	root.AddCommand(
		newExecCmd(opts),
		newExecutorsCmd(opts),
		newProductsCmd(opts),
		newPointCmd(),
	)
	return root
}

// withService builds the service for one command and closes it afterwards,
// logging close failures.
func (o *rootOptions) withService(fn func(*app.Service) error) error {
	svc, err := app.New(o.cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return fn(svc)
}
