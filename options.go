package sqlbind

import (
	"time"

	"go.uber.org/zap"

	"github.com/syssam/sqlbind/cache"
)

// Option configures statement resolution and the CRUD helpers.
type Option func(*options)

type options struct {
	logger   *zap.Logger
	cache    cache.Cache
	cacheTTL time.Duration
}

func applyOptions(opts []Option) *options {
	o := &options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger installs a logger that receives every resolved statement and
// its parameter count at Debug level. The default is a no-op logger;
// tracing only observes generated SQL and never changes it.
func WithLogger(lg *zap.Logger) Option {
	return func(o *options) {
		if lg != nil {
			o.logger = lg
		}
	}
}

// WithCache caches Select result sets in c for ttl (0 means no expiry).
// Entries are keyed by the generated SQL and the bound parameter values.
// Callers that mutate through Insert, Update or Delete are responsible for
// invalidating affected entries.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(o *options) {
		o.cache = c
		o.cacheTTL = ttl
	}
}
