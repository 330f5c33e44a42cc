package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantlenetworkio/mantle-tutorial-go/types"
)

func TestRecord(t *testing.T) {
	m := NewMetrics()
	m.RecordLastIndexedBlock("l1", 120)
	m.RecordIndexed("deposit", 3)
	m.RecordIndexed("deposit", 2)
	m.RecordStatusChange(types.ReadyToProve)
	m.RecordStatusPoll(types.L2ToL1)

	assert.Equal(t, float64(120), testutil.ToFloat64(m.LastIndexedBlock.WithLabelValues("l1")))
	assert.Equal(t, float64(5), testutil.ToFloat64(m.TransactionsIndexed.WithLabelValues("deposit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.StatusChanges.WithLabelValues("READY_TO_PROVE")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.StatusPolls.WithLabelValues("L2_TO_L1")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordLastIndexedBlock("l2", 1)
		m.RecordIndexed("withdrawal", 1)
		m.RecordStatusChange(types.Relayed)
		m.RecordStatusPoll(types.L1ToL2)
	})
}

func TestHandler(t *testing.T) {
	m := NewMetrics()
	m.RecordLastIndexedBlock("l2", 7)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `mantle_bridge_indexer_last_indexed_block{chain="l2"} 7`)
}
