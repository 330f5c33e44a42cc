package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mantlenetworkio/mantle-tutorial-go/types"
)

const Namespace = "mantle_bridge"

// Metrics is safe to use as a nil pointer, in which case nothing is recorded.
type Metrics struct {
	LastIndexedBlock    *prometheus.GaugeVec
	TransactionsIndexed *prometheus.CounterVec
	StatusChanges       *prometheus.CounterVec
	StatusPolls         *prometheus.CounterVec

	registry *prometheus.Registry
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	reg.MustRegister(collectors.NewGoCollector())

	return &Metrics{
		LastIndexedBlock: promauto.With(reg).NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "indexer_last_indexed_block",
				Help:      "the last block the indexer has processed",
			},
			[]string{"chain"},
		),
		TransactionsIndexed: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "indexer_transactions_indexed_total",
				Help:      "the number of bridge transactions stored by the indexer",
			},
			[]string{"type"},
		),
		StatusChanges: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "message_status_changes_total",
				Help:      "observed transitions of cross domain message status",
			},
			[]string{"status"},
		),
		StatusPolls: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "messenger_status_polls_total",
				Help:      "the number of message status lookups",
			},
			[]string{"direction"},
		),
		registry: reg,
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordLastIndexedBlock(chain string, block uint64) {
	if m == nil {
		return
	}
	m.LastIndexedBlock.WithLabelValues(chain).Set(float64(block))
}

func (m *Metrics) RecordIndexed(txType string, n int) {
	if m == nil {
		return
	}
	m.TransactionsIndexed.WithLabelValues(txType).Add(float64(n))
}

func (m *Metrics) RecordStatusChange(status types.MessageStatus) {
	if m == nil {
		return
	}
	m.StatusChanges.WithLabelValues(status.String()).Inc()
}

func (m *Metrics) RecordStatusPoll(direction types.MessageDirection) {
	if m == nil {
		return
	}
	m.StatusPolls.WithLabelValues(direction.String()).Inc()
}
