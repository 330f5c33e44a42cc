package indexer

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/mantlenetworkio/mantle-tutorial-go/chain"
	"github.com/mantlenetworkio/mantle-tutorial-go/database"
	"github.com/mantlenetworkio/mantle-tutorial-go/database/models"
	"github.com/mantlenetworkio/mantle-tutorial-go/ethereum"
	"github.com/mantlenetworkio/mantle-tutorial-go/mantle"
	"github.com/mantlenetworkio/mantle-tutorial-go/messenger"
	"github.com/mantlenetworkio/mantle-tutorial-go/metrics"
	"github.com/mantlenetworkio/mantle-tutorial-go/types"
)

const (
	ChainEthereum = "ethereum"
	ChainMantle   = "mantle"

	DefaultMaxBatchSize        = 2000
	DefaultFetchInterval       = 10 * time.Second
	DefaultStatusCheckInterval = 30 * time.Second
)

// Store is the part of the database the indexer writes to.
type Store interface {
	BatchCreateTransactions(ctx context.Context, txs []models.Transaction) error
	GetLastIndexedBlock(ctx context.Context, chain string) (uint64, error)
	UpdateLastIndexedBlock(ctx context.Context, chain string, blockNumber uint64) error
	GetPendingTransactions(ctx context.Context, txType string) ([]models.Transaction, error)
	UpdateTransactionStatus(ctx context.Context, txHash, messageHash string, status types.MessageStatus) error
	CreateTransactionProven(ctx context.Context, transaction models.TransactionProven) error
	CreateTransactionFinalized(ctx context.Context, transaction models.TransactionFinalized) error
}

var _ Store = &database.Database{}

// StatusSource resolves the live status of every message sent in a transaction.
type StatusSource interface {
	MessageStatuses(ctx context.Context, txHash common.Hash) (map[common.Hash]types.MessageStatus, error)
}

var _ StatusSource = &messenger.CrossChainMessenger{}

type Indexer struct {
	ethereum  *ethereum.Client
	mantle    *mantle.Client
	messenger *messenger.CrossChainMessenger
	store     Store
	status    StatusSource
	metrics   *metrics.Metrics
	logger    *slog.Logger
	opts      IndexerOpts
}

type IndexerOpts struct {
	Messenger *messenger.CrossChainMessenger
	Store     Store
	Metrics   *metrics.Metrics
	Logger    *slog.Logger

	// Start blocks are used when a chain has never been indexed.
	EthereumStartBlock uint64
	MantleStartBlock   uint64
	// A batch is only processed once MinBatchSize blocks past its start exist.
	MinBatchSize        uint64
	MaxBatchSize        uint64
	FetchInterval       time.Duration
	StatusCheckInterval time.Duration
	IncludeERC721       bool
}

func NewIndexer(opts IndexerOpts) (*Indexer, error) {
	if opts.Messenger == nil || opts.Store == nil {
		return nil, fmt.Errorf("indexer needs a messenger and a store")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.MaxBatchSize == 0 {
		opts.MaxBatchSize = DefaultMaxBatchSize
	}
	if opts.FetchInterval == 0 {
		opts.FetchInterval = DefaultFetchInterval
	}
	if opts.StatusCheckInterval == 0 {
		opts.StatusCheckInterval = DefaultStatusCheckInterval
	}

	return &Indexer{
		ethereum:  opts.Messenger.L1(),
		mantle:    opts.Messenger.L2(),
		messenger: opts.Messenger,
		store:     opts.Store,
		status:    opts.Messenger,
		metrics:   opts.Metrics,
		logger:    opts.Logger.With("component", "indexer"),
		opts:      opts,
	}, nil
}

// Run indexes both chains and refreshes statuses until ctx is cancelled or
// one of the loops fails.
func (i *Indexer) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return i.indexChain(ctx, ChainEthereum, i.ethereum.Client, i.opts.EthereumStartBlock, i.processEthereumBatch)
	})
	g.Go(func() error {
		return i.indexChain(ctx, ChainMantle, i.mantle.Client, i.opts.MantleStartBlock, i.processMantleBatch)
	})
	g.Go(func() error {
		return i.refreshLoop(ctx)
	})
	return g.Wait()
}

type batchFunc func(ctx context.Context, start, end uint64) error

func (i *Indexer) indexChain(ctx context.Context, name string, c *chain.Client, defaultStart uint64, process batchFunc) error {
	logger := i.logger.With("chain", name)

	start := defaultStart
	last, err := i.store.GetLastIndexedBlock(ctx, name)
	if err != nil {
		return err
	}
	if last > 0 {
		start = last + 1
	}

	logger.Info("starting indexer", "startBlock", start)

	for {
		if ctx.Err() != nil {
			logger.Info("shutting down indexer")
			return nil
		}

		head, err := c.BlockNumber(ctx)
		if err != nil {
			return fmt.Errorf("failed to get %s head: %w", name, err)
		}

		end, ok := nextBatch(start, head, i.opts.MinBatchSize, i.opts.MaxBatchSize)
		if !ok {
			logger.Debug("waiting for more blocks",
				"chainHead", head,
				"nextBatchStart", start,
				"minBatchSize", i.opts.MinBatchSize)
			if !sleep(ctx, i.opts.FetchInterval) {
				logger.Info("shutting down indexer")
				return nil
			}
			continue
		}

		logger.Info("processing blocks",
			"startBlock", start,
			"endBlock", end,
			"batchSize", end-start+1,
			"chainHead", head)

		if err := process(ctx, start, end); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to index %s blocks %d-%d: %w", name, start, end, err)
		}

		if err := i.store.UpdateLastIndexedBlock(ctx, name, end); err != nil {
			return err
		}
		i.metrics.RecordLastIndexedBlock(name, end)

		start = end + 1
	}
}

// nextBatch returns the last block of the batch starting at start. Catching
// up uses batches of up to max blocks.
func nextBatch(start, head, min, max uint64) (uint64, bool) {
	if head < start+min {
		return 0, false
	}
	end := start + max - 1
	if end > head {
		end = head
	}
	return end, true
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// blockTimes caches block timestamps for the duration of a batch.
type blockTimes struct {
	client *chain.Client
	times  map[uint64]uint64
}

func newBlockTimes(c *chain.Client) *blockTimes {
	return &blockTimes{client: c, times: make(map[uint64]uint64)}
}

func (b *blockTimes) get(ctx context.Context, number uint64) (uint64, error) {
	if t, ok := b.times[number]; ok {
		return t, nil
	}
	info, err := b.client.BlockInfo(ctx, new(big.Int).SetUint64(number))
	if err != nil {
		return 0, err
	}
	b.times[number] = info.Timestamp
	return info.Timestamp, nil
}

// messageAfter picks the messenger message a bridge event caused: the first
// SentMessage logged after it in the same transaction.
func messageAfter(messages []*types.CrossChainMessage, logIndex uint) (*types.CrossChainMessage, error) {
	for _, msg := range messages {
		if msg.LogIndex > logIndex {
			return msg, nil
		}
	}
	return nil, fmt.Errorf("no message sent after log %d", logIndex)
}

func newTransaction(txType string, msg *types.TokenBridgeMessage, messageHash common.Hash, blockTime uint64, status types.MessageStatus) models.Transaction {
	amount := "0"
	if msg.Amount != nil {
		amount = msg.Amount.String()
	}
	return models.Transaction{
		Type:        txType,
		Kind:        msg.Kind,
		From:        msg.From.Hex(),
		To:          msg.To.Hex(),
		Amount:      amount,
		L1Token:     msg.L1Token.Hex(),
		L2Token:     msg.L2Token.Hex(),
		MessageHash: messageHash.Hex(),
		TxHash:      msg.TransactionHash.Hex(),
		LogIndex:    msg.LogIndex,
		BlockNumber: msg.BlockNumber,
		BlockTime:   blockTime,
		Status:      status,
	}
}
