package commands

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/notorious-go/monitors"
	"github.com/notorious-go/monitors/semaphore"
)

func NewFIFOCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fifo",
		Short: "Queue waiters on a FIFO semaphore and check they are served in order",
		RunE: func(cc *cobra.Command, _ []string) error {
			var merr error

			flags := cc.Flags()
			waiters, err := flags.GetInt("waiters")
			if err != nil {
				merr = multierror.Append(merr, err)
			}
			if waiters < 1 {
				merr = multierror.Append(merr, fmt.Errorf("need at least one waiter, got %d", waiters))
			}

			if merr != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
			}

			ctx, cancel, err := runContext(cc)
			if err != nil {
				return err
			}
			defer cancel()

			sem := semaphore.NewFIFO(0)
			granted := make(chan int, waiters)

			var g monitors.Group
			for i, c := range monitors.NewCallers("waiter", waiters) {
				g.Go(c, func(*monitors.Caller) error {
					if err := sem.Acquire(ctx); err != nil {
						return err
					}
					granted <- i
					return nil
				})
				// Arrival order is only defined once the waiter is queued.
				for sem.Waiting() != i+1 {
					if err := monitors.Check(ctx); err != nil {
						return err
					}
					time.Sleep(time.Millisecond)
				}
			}

			for want := range waiters {
				sem.Release()
				select {
				case got := <-granted:
					if got != want {
						return fmt.Errorf("%w: released permit %d went to waiter %d", ErrCheckFailed, want, got)
					}
				case <-ctx.Done():
					return monitors.Interrupted(ctx)
				}
			}
			if err := g.Wait(); err != nil {
				return err
			}

			slog.Info("fifo run complete", slog.Int("waiters", waiters))
			fmt.Fprintf(cc.OutOrStdout(), "waiters=%d served in arrival order\n", waiters)

			return nil
		},
	}

	cmd.Flags().Int("waiters", 32, "Number of waiters")

	return cmd
}
