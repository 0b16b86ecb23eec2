package commands

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/notorious-go/monitors"
	"github.com/notorious-go/monitors/barrier"
)

func NewBarrierCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "barrier",
		Short: "Run participants through a barrier for a number of cycles",
		RunE: func(cc *cobra.Command, _ []string) error {
			var merr error

			flags := cc.Flags()
			participants, err := flags.GetInt("participants")
			if err != nil {
				merr = multierror.Append(merr, err)
			}
			cycles, err := flags.GetInt("cycles")
			if err != nil {
				merr = multierror.Append(merr, err)
			}
			rotate, err := flags.GetBool("rotate")
			if err != nil {
				merr = multierror.Append(merr, err)
			}
			quantum, err := flags.GetDuration("quantum")
			if err != nil {
				merr = multierror.Append(merr, err)
			}
			if participants < 2 {
				merr = multierror.Append(merr, fmt.Errorf("not enough participants: %d", participants))
			}
			if cycles < 0 {
				merr = multierror.Append(merr, fmt.Errorf("negative cycles: %d", cycles))
			}

			if merr != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
			}

			ctx, cancel, err := runContext(cc)
			if err != nil {
				return err
			}
			defer cancel()

			var exchange barrier.ExchangeFunc[int]
			if rotate {
				exchange = barrier.Rotate[int]
			}

			callers := monitors.NewCallers("participant", participants)
			b, err := barrier.New(callers, exchange,
				barrier.WithQuantum(quantum),
				barrier.WithLogger(slog.Default()),
			)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
			}

			start := time.Now()

			var g monitors.Group
			for i, c := range callers {
				g.Go(c, func(c *monitors.Caller) error {
					for cycle := range cycles {
						got, err := b.Exchange(ctx, c, i)
						if err != nil {
							return fmt.Errorf("cycle %d: %w", cycle, err)
						}
						if !rotate && got != i {
							return fmt.Errorf("%w: cycle %d: presented %d, got back %d", ErrCheckFailed, cycle, i, got)
						}
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			slog.Info("barrier run complete",
				slog.Int("participants", participants),
				slog.Duration("elapsed", time.Since(start)),
			)
			fmt.Fprintf(cc.OutOrStdout(), "participants=%d cycles=%d spins=%d\n", participants, cycles, b.SpinCount())

			return nil
		},
	}

	cmd.Flags().Int("participants", 3, "Number of participants")
	cmd.Flags().Int("cycles", 1000, "Number of cycles to run")
	cmd.Flags().Bool("rotate", false, "Rotate payloads between participants at every cycle")
	cmd.Flags().Duration("quantum", barrier.DefaultQuantum, "Interval between liveness checks")

	return cmd
}
