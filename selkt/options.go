package selkt

import (
	"io"
	"log/slog"
)

// DefaultMaxDrainPasses bounds how many times a single drain re-checks the
// pending queue. A cascade that keeps writing past this is treated as a bug.
const DefaultMaxDrainPasses = 100

type config struct {
	logger     *slog.Logger
	maxPasses  int
	hooks      Hooks
	ownerCheck bool
}

func defaultConfig() config {
	return config{
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxPasses: DefaultMaxDrainPasses,
	}
}

// Option configures a Runtime.
type Option func(*config)

// WithLogger sets the logger used for drain diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMaxDrainPasses overrides DefaultMaxDrainPasses. Values below one are
// ignored.
func WithMaxDrainPasses(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxPasses = n
		}
	}
}

// WithHooks installs instrumentation callbacks.
func WithHooks(h Hooks) Option {
	return func(c *config) {
		c.hooks = h
	}
}

// WithOwnerCheck makes the runtime panic with ErrWrongGoroutine when it is
// driven from a goroutine other than the one that created it.
func WithOwnerCheck() Option {
	return func(c *config) {
		c.ownerCheck = true
	}
}

type storeConfig struct {
	name string
}

// StoreOption configures a Store.
type StoreOption func(*storeConfig)

// WithName labels a store in logs and metrics.
func WithName(name string) StoreOption {
	return func(c *storeConfig) {
		c.name = name
	}
}
