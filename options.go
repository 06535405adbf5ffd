package ordcache

import (
	"log/slog"
	"os"
)

type options struct {
	logger *slog.Logger
}

// Option configures an OrderedIndex at construction time.
type Option func(*options)

// WithLogger sets the structured logger used for diagnostics (currently only
// corruption detection). If nil is passed, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = noopLogger()
		}
		o.logger = l
	}
}

func noopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

func applyOptions(optFns []Option) options {
	opts := options{
		logger: noopLogger(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}
