package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/notorious-go/monitors"
	"github.com/notorious-go/monitors/sharedqueue"
)

func NewQueueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Pass increasing integers through a shared queue and check their order",
		RunE: func(cc *cobra.Command, _ []string) error {
			var merr error

			flags := cc.Flags()
			kind, err := flags.GetString("kind")
			if err != nil {
				merr = multierror.Append(merr, err)
			}
			capacity, err := flags.GetInt("capacity")
			if err != nil {
				merr = multierror.Append(merr, err)
			}
			items, err := flags.GetInt("items")
			if err != nil {
				merr = multierror.Append(merr, err)
			}

			var q monitors.SharedQueue[int]
			switch strings.ToLower(kind) {
			case "bounded":
				q, err = sharedqueue.NewBounded[int](capacity)
			case "unbounded":
				q, err = sharedqueue.NewUnbounded[int](capacity)
			default:
				err = fmt.Errorf("unknown queue kind %q", kind)
			}
			if err != nil {
				merr = multierror.Append(merr, err)
			}

			if merr != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
			}

			ctx, cancel, err := runContext(cc)
			if err != nil {
				return err
			}
			defer cancel()

			producer, consumer := monitors.NewCaller("producer"), monitors.NewCaller("consumer")

			var g monitors.Group
			g.Go(producer, func(*monitors.Caller) error {
				for i := range items {
					if err := q.Add(ctx, i); err != nil {
						return err
					}
				}
				return nil
			})
			g.Go(consumer, func(*monitors.Caller) error {
				for want := range items {
					got, err := q.Remove(ctx)
					if err != nil {
						return err
					}
					if got != want {
						return fmt.Errorf("%w: expected %d, got %d", ErrCheckFailed, want, got)
					}
				}
				return nil
			})
			if err := g.Wait(); err != nil {
				return err
			}

			slog.Info("queue run complete", slog.String("kind", kind), slog.Int("capacity", capacity))
			fmt.Fprintf(cc.OutOrStdout(), "kind=%s capacity=%d items=%d in order\n", kind, capacity, items)

			return nil
		},
	}

	cmd.Flags().String("kind", "bounded", "Queue kind (bounded, unbounded)")
	cmd.Flags().Int("capacity", 16, "Queue capacity")
	cmd.Flags().Int("items", 16*1000, "Number of items to pass through the queue")

	return cmd
}
