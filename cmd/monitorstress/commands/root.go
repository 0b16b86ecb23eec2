package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/notorious-go/monitors/internal/logging"
)

var (
	ErrLogHandlerFailed = errors.New("log handler failed")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrCheckFailed      = errors.New("check failed")
)

func NewRootCmd(name, shortDesc, longDesc string) *cobra.Command {
	var logLevel, logFormat string

	cmd := &cobra.Command{
		Use:           name,
		Short:         shortDesc,
		Long:          longDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log_level", "warn", "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&logFormat, "log_format", "text", "Set the log format (text, logfmt, json)")
	cmd.PersistentFlags().Duration("timeout", time.Minute, "Abort the run after this long")

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		h, err := logging.CreateHandlerWithStrings(cc.ErrOrStderr(), logLevel, logFormat)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrLogHandlerFailed, err)
		}

		slog.SetDefault(slog.New(h))

		slog.Debug("ready to go")

		return nil
	}

	cmd.AddCommand(NewBarrierCmd())
	cmd.AddCommand(NewQueueCmd())
	cmd.AddCommand(NewFIFOCmd())

	return cmd
}

// runContext returns the command's context bounded by the --timeout flag.
func runContext(cc *cobra.Command) (context.Context, context.CancelFunc, error) {
	timeout, err := cc.Flags().GetDuration("timeout")
	if err != nil {
		return nil, nil, err
	}
	ctx, cancel := context.WithTimeout(cc.Context(), timeout)
	return ctx, cancel, nil
}
