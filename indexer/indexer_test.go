package indexer

import (
	"context"
	"errors"
	"log/slog"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantlenetworkio/mantle-tutorial-go/contracts"
	"github.com/mantlenetworkio/mantle-tutorial-go/database/models"
	"github.com/mantlenetworkio/mantle-tutorial-go/metrics"
	"github.com/mantlenetworkio/mantle-tutorial-go/types"
)

func TestNextBatch(t *testing.T) {
	tests := []struct {
		name        string
		start, head uint64
		min, max    uint64
		wantEnd     uint64
		wantOK      bool
	}{
		{name: "caught up", start: 101, head: 100, min: 0, max: 2000, wantOK: false},
		{name: "one new block", start: 100, head: 100, min: 0, max: 2000, wantEnd: 100, wantOK: true},
		{name: "below min batch", start: 100, head: 140, min: 50, max: 2000, wantOK: false},
		{name: "capped by head", start: 100, head: 150, min: 50, max: 2000, wantEnd: 150, wantOK: true},
		{name: "catching up", start: 0, head: 10000, min: 50, max: 2000, wantEnd: 1999, wantOK: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end, ok := nextBatch(tt.start, tt.head, tt.min, tt.max)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantEnd, end)
			}
		})
	}
}

func TestMessageAfter(t *testing.T) {
	messages := []*types.CrossChainMessage{
		{LogIndex: 3, MessageNonce: big.NewInt(1)},
		{LogIndex: 8, MessageNonce: big.NewInt(2)},
	}

	msg, err := messageAfter(messages, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), msg.MessageNonce.Int64())

	msg, err = messageAfter(messages, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(2), msg.MessageNonce.Int64())

	_, err = messageAfter(messages, 9)
	require.Error(t, err)
}

func TestNewTransaction(t *testing.T) {
	msg := &types.TokenBridgeMessage{
		Kind:            types.TokenERC20,
		From:            common.HexToAddress("0x01"),
		To:              common.HexToAddress("0x02"),
		L1Token:         common.HexToAddress("0x03"),
		L2Token:         common.HexToAddress("0x04"),
		Amount:          big.NewInt(1000),
		TransactionHash: common.HexToHash("0xaa"),
		LogIndex:        2,
		BlockNumber:     7,
	}

	tx := newTransaction(models.TypeDeposit, msg, common.HexToHash("0xbb"), 1700000000, types.UnconfirmedL1ToL2Message)
	assert.Equal(t, "deposit", tx.Type)
	assert.Equal(t, types.TokenERC20, tx.Kind)
	assert.Equal(t, "1000", tx.Amount)
	assert.Equal(t, msg.From.Hex(), tx.From)
	assert.Equal(t, msg.L2Token.Hex(), tx.L2Token)
	assert.Equal(t, common.HexToHash("0xbb").Hex(), tx.MessageHash)
	assert.Equal(t, uint64(1700000000), tx.BlockTime)
	assert.Empty(t, tx.WithdrawalHash)
}

func TestDecodePortalLog(t *testing.T) {
	hash := common.HexToHash("0x1234")

	proven, err := decodePortalLog(&ethtypes.Log{Topics: []common.Hash{
		contracts.WithdrawalProven.Topic0,
		hash,
		common.BytesToHash(common.HexToAddress("0x01").Bytes()),
		common.BytesToHash(common.HexToAddress("0x02").Bytes()),
	}})
	require.NoError(t, err)
	assert.True(t, proven.Proven)
	assert.Equal(t, hash, proven.WithdrawalHash)

	finalized, err := decodePortalLog(&ethtypes.Log{
		Topics: []common.Hash{contracts.WithdrawalFinalized.Topic0, hash},
		Data:   common.LeftPadBytes([]byte{1}, 32),
	})
	require.NoError(t, err)
	assert.False(t, finalized.Proven)
	assert.True(t, finalized.Success)
	assert.Equal(t, hash, finalized.WithdrawalHash)

	_, err = decodePortalLog(&ethtypes.Log{Topics: []common.Hash{common.HexToHash("0xdead")}})
	require.Error(t, err)
}

func TestAdvances(t *testing.T) {
	assert.True(t, advances(models.TypeWithdrawal, types.ReadyToProve, types.InChallengePeriod))
	assert.False(t, advances(models.TypeWithdrawal, types.InChallengePeriod, types.ReadyToProve))
	assert.False(t, advances(models.TypeWithdrawal, types.Relayed, types.Relayed))
	assert.True(t, advances(models.TypeDeposit, types.UnconfirmedL1ToL2Message, types.FailedL1ToL2Message))
	assert.True(t, advances(models.TypeDeposit, types.FailedL1ToL2Message, types.Relayed))
}

type fakeStore struct {
	Store
	mu      sync.Mutex
	pending map[string][]models.Transaction
	updates map[string]types.MessageStatus
}

func (f *fakeStore) GetPendingTransactions(_ context.Context, txType string) ([]models.Transaction, error) {
	return f.pending[txType], nil
}

func (f *fakeStore) UpdateTransactionStatus(_ context.Context, txHash, messageHash string, status types.MessageStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates[txHash+"/"+messageHash] = status
	return nil
}

// fakeStatus maps tx hash to the statuses of the messages it sent.
type fakeStatus map[common.Hash]map[common.Hash]types.MessageStatus

func (f fakeStatus) MessageStatuses(_ context.Context, txHash common.Hash) (map[common.Hash]types.MessageStatus, error) {
	statuses, ok := f[txHash]
	if !ok {
		return nil, errors.New("receipt not found")
	}
	return statuses, nil
}

func TestRefreshStatuses(t *testing.T) {
	var (
		deposit   = common.HexToHash("0x01")
		replayed  = common.HexToHash("0x02")
		multi     = common.HexToHash("0x03")
		unchanged = common.HexToHash("0x04")
		missing   = common.HexToHash("0x05")

		msgA = common.HexToHash("0xa1")
		msgB = common.HexToHash("0xb2")
		msgC = common.HexToHash("0xc3")
	)
	key := func(tx, msg common.Hash) string { return tx.Hex() + "/" + msg.Hex() }

	store := &fakeStore{
		pending: map[string][]models.Transaction{
			models.TypeDeposit: {
				{TxHash: deposit.Hex(), MessageHash: msgA.Hex(), Status: types.UnconfirmedL1ToL2Message},
				{TxHash: replayed.Hex(), MessageHash: msgA.Hex(), Status: types.FailedL1ToL2Message},
				{TxHash: missing.Hex(), MessageHash: msgA.Hex(), Status: types.UnconfirmedL1ToL2Message},
			},
			models.TypeWithdrawal: {
				{TxHash: multi.Hex(), MessageHash: msgA.Hex(), Status: types.StateRootNotPublished},
				{TxHash: multi.Hex(), MessageHash: msgB.Hex(), Status: types.StateRootNotPublished},
				{TxHash: multi.Hex(), MessageHash: msgC.Hex(), Status: types.StateRootNotPublished},
				{TxHash: unchanged.Hex(), MessageHash: msgA.Hex(), Status: types.InChallengePeriod},
			},
		},
		updates: map[string]types.MessageStatus{},
	}
	m := metrics.NewMetrics()
	i := &Indexer{
		store: store,
		status: fakeStatus{
			deposit:  {msgA: types.Relayed},
			replayed: {msgA: types.Relayed},
			// msgC is not among the messages the transaction sent
			multi:     {msgA: types.ReadyToProve, msgB: types.StateRootNotPublished},
			unchanged: {msgA: types.InChallengePeriod},
		},
		metrics: m,
		logger:  slog.Default(),
	}

	n, err := i.RefreshStatuses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, map[string]types.MessageStatus{
		key(deposit, msgA):  types.Relayed,
		key(replayed, msgA): types.Relayed,
		key(multi, msgA):    types.ReadyToProve,
	}, store.updates)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.StatusChanges.WithLabelValues("RELAYED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StatusChanges.WithLabelValues("READY_TO_PROVE")))
}

func TestByTxHash(t *testing.T) {
	grouped := byTxHash([]models.Transaction{
		{TxHash: "0x1", MessageHash: "a"},
		{TxHash: "0x2", MessageHash: "b"},
		{TxHash: "0x1", MessageHash: "c"},
	})
	require.Len(t, grouped, 2)
	assert.Len(t, grouped["0x1"], 2)
	assert.Equal(t, "c", grouped["0x1"][1].MessageHash)
}
