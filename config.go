package wisp

import (
	"go.uber.org/zap"

	"github.com/ralphmorton/wisp/binary"
)

type config struct {
	logger  *zap.Logger
	cache   *binary.Cache
	metrics *metricsRecorder
}

func defaultConfig() *config {
	return &config{
		logger:  zap.NewNop(),
		metrics: noopMetrics(),
	}
}

// Option configures a Runtime at construction time.
type Option func(*config)

// WithLogger attaches a structured logger. Nil is treated as a no-op
// logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *config) {
		if log == nil {
			log = zap.NewNop()
		}
		c.logger = log
	}
}

// WithCache decodes the module through a shared binary.Cache instead
// of decoding unconditionally, so repeated instantiation of the same
// bytes reuses the prior decode.
func WithCache(cache *binary.Cache) Option {
	return func(c *config) {
		c.cache = cache
	}
}

// WithMetrics records call counts and durations against reg instead of
// the default no-op recorder.
func WithMetrics(reg prometheusRegisterer) Option {
	return func(c *config) {
		c.metrics = newMetricsRecorder(reg)
	}
}
