package backup

import (
	"time"

	"github.com/okian/podium/pkg/logger"
)

// Option applies a configuration option to the Chain.
type Option func(*Chain)

// WithClock overrides the time source used for snapshot stamps.
func WithClock(now func() time.Time) Option {
	return func(c *Chain) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets a custom logger for the chain.
func WithLogger(log logger.Logger) Option {
	return func(c *Chain) {
		if log != nil {
			c.log = log
		}
	}
}
