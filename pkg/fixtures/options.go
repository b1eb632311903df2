package fixtures

import (
	"go.uber.org/zap"

	"github.com/chainsafe/bridge-fixtures/internal/metrics"
)

type settings struct {
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// Option configures the generator.
type Option func(*settings)

// WithLogger sets a custom logger for the generator.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithMetrics records generation counters on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

func applyOptions(opts []Option) settings {
	s := settings{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}
