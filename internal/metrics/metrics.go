package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects fixture generation counters on a private registry so that one-shot runs can
// dump them to a node_exporter textfile.
type Metrics struct {
	Registry *prometheus.Registry

	// FixturesGenerated counts generated fixtures by conversion direction
	FixturesGenerated *prometheus.CounterVec

	// GenerationErrors counts tokens whose fixture could not be built
	GenerationErrors prometheus.Counter

	// DecimalGap tracks the decimal gap of generated fixtures
	DecimalGap prometheus.Histogram
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		FixturesGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bridge_fixtures_generated_total",
				Help: "Total number of generated bridge fixtures",
			},
			[]string{"direction"},
		),
		GenerationErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "bridge_fixture_generation_errors_total",
				Help: "Total number of tokens that failed fixture generation",
			},
		),
		DecimalGap: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "bridge_fixture_decimal_gap",
				Help:    "Absolute difference between bridged and local decimals",
				Buckets: []float64{0, 3, 6, 9, 12, 18},
			},
		),
	}
}

// WriteTextfile writes the current values in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
