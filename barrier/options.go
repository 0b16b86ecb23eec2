package barrier

import (
	"log/slog"
	"time"

	"github.com/notorious-go/monitors"
)

// DefaultQuantum is the default interval between two liveness checks.
const DefaultQuantum = 2 * time.Second

type options struct {
	quantum  time.Duration
	liveness monitors.Liveness
	logger   *slog.Logger
}

func defaultOptions() options {
	return options{
		quantum:  DefaultQuantum,
		liveness: monitors.CallerLiveness,
		logger:   slog.New(slog.DiscardHandler),
	}
}

// Option configures a Barrier.
type Option func(*options)

// WithQuantum sets the interval between two liveness checks of the watchdog.
// Non-positive values are ignored.
func WithQuantum(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.quantum = d
		}
	}
}

// WithLiveness replaces the capability the watchdog uses to tell whether a
// participant is still alive.
func WithLiveness(l monitors.Liveness) Option {
	return func(o *options) {
		if l != nil {
			o.liveness = l
		}
	}
}

// WithLogger sets the logger reporting cycles and breakage. By default nothing
// is logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
