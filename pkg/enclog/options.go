package enclog

import (
	"log/slog"

	"github.com/esolog/enclog-go/pkg/enclog/refdata"
)

// DefaultProgressEvery is the default line cadence for progress callbacks.
const DefaultProgressEvery = 10000

// Option configures a Session using the functional options pattern.
type Option func(*config)

type config struct {
	logger        *slog.Logger
	strictVersion bool
	progressEvery int
	progressFn    func(lines int)
	ref           *refdata.Table
}

func defaultConfig() *config {
	return &config{
		progressEvery: DefaultProgressEvery,
		ref:           refdata.Default(),
	}
}

func applyOptions(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// WithLogger sets a custom logger for diagnostics (unknown enum values,
// version drift, skipped lines). If logger is nil, logging is disabled
// (default behavior).
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithStrictVersion aborts processing when BEGIN_LOG announces a log format
// version other than the supported one. The default is to log a warning and
// continue, matching historical behavior; strict mode trades compatibility
// for safety since field offsets are tied to the version.
func WithStrictVersion(strict bool) Option {
	return func(c *config) {
		c.strictVersion = strict
	}
}

// WithProgress invokes fn every `every` processed lines. Purely for
// observability; it has no semantic effect on the model.
func WithProgress(every int, fn func(lines int)) Option {
	return func(c *config) {
		if every > 0 {
			c.progressEvery = every
		}
		c.progressFn = fn
	}
}

// WithRefData sets the static reference table consulted for display names.
// If t is nil, this option has no effect (bundled defaults remain active).
func WithRefData(t *refdata.Table) Option {
	return func(c *config) {
		if t != nil {
			c.ref = t
		}
	}
}
