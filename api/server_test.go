package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantlenetworkio/mantle-tutorial-go/database"
	"github.com/mantlenetworkio/mantle-tutorial-go/database/models"
	"github.com/mantlenetworkio/mantle-tutorial-go/messenger"
	"github.com/mantlenetworkio/mantle-tutorial-go/metrics"
	"github.com/mantlenetworkio/mantle-tutorial-go/types"
)

var knownTx = common.HexToHash("0x6d2bb1d0a5a4c0ef2a5bd7e3a10e0cda8c5d7a1b5e4f3a2b1c0d9e8f7a6b5c4d")

type fakeStore struct {
	lastFilter   models.Filter
	lastPage     int64
	lastPageSize int64
}

func (f *fakeStore) GetTransactions(_ context.Context, filter models.Filter, page int64, pageSize int64) (*models.PaginatedResult, error) {
	f.lastFilter, f.lastPage, f.lastPageSize = filter, page, pageSize
	return &models.PaginatedResult{
		Items:      []models.Transaction{{Type: models.TypeDeposit, TxHash: knownTx.Hex(), Status: types.Relayed}},
		TotalCount: 1,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

func (f *fakeStore) GetTransactionByHash(_ context.Context, txHash common.Hash) (*models.Transaction, error) {
	if txHash != knownTx {
		return nil, database.ErrNotFound
	}
	return &models.Transaction{Type: models.TypeWithdrawal, TxHash: knownTx.Hex(), Status: types.InChallengePeriod}, nil
}

type fakeStatus struct{}

func (fakeStatus) GetMessageStatus(_ context.Context, txHash common.Hash) (types.MessageStatus, error) {
	if txHash != knownTx {
		return 0, fmt.Errorf("%w: transaction %s is on neither chain", messenger.ErrMessageNotFound, txHash.Hex())
	}
	return types.ReadyForRelay, nil
}

func newTestServer() (*Server, *fakeStore) {
	store := &fakeStore{}
	return NewServer(ServerOpts{Store: store, Status: fakeStatus{}, Metrics: metrics.NewMetrics()}), store
}

func get(t *testing.T, s *Server, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]interface{}
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer()
	rec, body := get(t, s, "/v1/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "online", body["health_status"])
}

func TestTransactions(t *testing.T) {
	s, store := newTestServer()
	rec, body := get(t, s, "/v1/transactions?status=relayed&type=Deposit&page=2&pageSize=500")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "RELAYED", store.lastFilter.Status)
	assert.Equal(t, "deposit", store.lastFilter.Type)
	assert.Equal(t, int64(2), store.lastPage)
	assert.Equal(t, int64(maxPageSize), store.lastPageSize)

	items := body["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "RELAYED", items[0].(map[string]interface{})["status"])
}

func TestTransactionsDefaults(t *testing.T) {
	s, store := newTestServer()
	rec, _ := get(t, s, "/v1/transactions?page=abc")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), store.lastPage)
	assert.Equal(t, int64(10), store.lastPageSize)
}

func TestTransactionsBadFilter(t *testing.T) {
	s, _ := newTestServer()
	for _, query := range []string{"status=PENDING", "from=0x123", "type=bridge", "txHash=0xzz"} {
		rec, body := get(t, s, "/v1/transactions?"+query)
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
		assert.NotEmpty(t, body["error"], query)
	}
}

func TestTransactionByHash(t *testing.T) {
	s, _ := newTestServer()

	rec, body := get(t, s, "/v1/transactions/"+knownTx.Hex())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "IN_CHALLENGE_PERIOD", body["status"])

	rec, _ = get(t, s, "/v1/transactions/"+common.HexToHash("0x01").Hex())
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = get(t, s, "/v1/transactions/0x1234")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMessageStatus(t *testing.T) {
	s, _ := newTestServer()

	rec, body := get(t, s, "/v1/messages/"+knownTx.Hex()+"/status")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "READY_FOR_RELAY", body["status"])
	assert.Equal(t, knownTx.Hex(), body["tx_hash"])

	rec, _ = get(t, s, "/v1/messages/"+common.HexToHash("0x01").Hex()+"/status")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer()
	rec, _ := get(t, s, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
