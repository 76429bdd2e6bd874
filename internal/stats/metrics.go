package stats

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jsdoublel/dbsearch/internal/search"
)

// Search observer recording created nodes as prometheus metrics
type Metrics struct {
	nodes    *prometheus.CounterVec // created nodes by type
	maxDepth prometheus.Gauge       // deepest node reported
	span     prometheus.Histogram   // range width of created nodes
	deepest  int
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		nodes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dbsearch_nodes_created_total",
			Help: "Derivation nodes created by type",
		}, []string{"type"}),
		maxDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dbsearch_max_depth",
			Help: "Deepest pass that created a node",
		}),
		span: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "dbsearch_node_span",
			Help:    "Number of input positions reduced by a created node",
			Buckets: prometheus.ExponentialBuckets(2, 2, 8),
		}),
	}
}

func (m *Metrics) Observe(e search.Event) {
	m.nodes.WithLabelValues(e.Type.String()).Inc()
	m.span.Observe(float64(e.Op.Span()))
	if e.Depth > m.deepest {
		m.deepest = e.Depth
		m.maxDepth.Set(float64(e.Depth))
	}
}

// Writes every metric gathered by g to path in the text exposition format
func WriteMetrics(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("error writing metrics to %s: %w", path, err)
	}
	return nil
}
