package rtree

import "github.com/prometheus/client_golang/prometheus"

// treeMetrics holds the Prometheus collectors for one index instance.
// Each Index gets its own treeMetrics registered under a label carrying
// the index's uuid, so counters from independent Index[T] instances in
// the same process don't collide.
type treeMetrics struct {
	queriesTotal  *prometheus.CounterVec
	nodesVisited  prometheus.Histogram
	splits        prometheus.Counter
	rootGrowths   prometheus.Counter
	rootCollapses prometheus.Counter
	condenseElims prometheus.Counter
}

// newTreeMetrics builds and registers a treeMetrics against reg, labeling
// every collector with indexID so per-instance series are distinguishable.
// reg may be nil, in which case metrics are constructed but never
// registered — used by tests that don't want to pollute the default
// registry.
func newTreeMetrics(reg prometheus.Registerer, indexID string) *treeMetrics {
	labels := prometheus.Labels{"index_id": indexID}

	m := &treeMetrics{
		queriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "rtree",
			Name:        "queries_total",
			Help:        "Number of intersects/contains/nearest queries served, by kind.",
			ConstLabels: labels,
		}, []string{"kind"}),
		nodesVisited: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "rtree",
			Name:        "query_nodes_visited",
			Help:        "Number of tree nodes visited while answering a query.",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(1, 2, 12),
		}),
		splits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "rtree",
			Name:        "node_splits_total",
			Help:        "Number of node splits performed during insertion.",
			ConstLabels: labels,
		}),
		rootGrowths: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "rtree",
			Name:        "root_growths_total",
			Help:        "Number of times the tree grew a new root level.",
			ConstLabels: labels,
		}),
		rootCollapses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "rtree",
			Name:        "root_collapses_total",
			Help:        "Number of times a single-child root was collapsed.",
			ConstLabels: labels,
		}),
		condenseElims: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "rtree",
			Name:        "condense_eliminations_total",
			Help:        "Number of underfull nodes eliminated and reinserted by condenseTree.",
			ConstLabels: labels,
		}),
	}

	if reg != nil {
		reg.MustRegister(m.queriesTotal, m.nodesVisited, m.splits, m.rootGrowths, m.rootCollapses, m.condenseElims)
	}
	return m
}

func (m *treeMetrics) observeSplit() {
	if m == nil {
		return
	}
	m.splits.Inc()
}

func (m *treeMetrics) observeRootGrowth() {
	if m == nil {
		return
	}
	m.rootGrowths.Inc()
}

func (m *treeMetrics) observeRootCollapse() {
	if m == nil {
		return
	}
	m.rootCollapses.Inc()
}

func (m *treeMetrics) observeCondenseElimination() {
	if m == nil {
		return
	}
	m.condenseElims.Inc()
}

func (m *treeMetrics) observeQuery(kind string, nodesVisited int) {
	if m == nil {
		return
	}
	m.queriesTotal.WithLabelValues(kind).Inc()
	m.nodesVisited.Observe(float64(nodesVisited))
}
