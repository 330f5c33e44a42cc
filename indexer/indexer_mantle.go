package indexer

import (
	"context"
	"fmt"

	"github.com/mantlenetworkio/mantle-tutorial-go/crossdomain"
	"github.com/mantlenetworkio/mantle-tutorial-go/database/models"
	"github.com/mantlenetworkio/mantle-tutorial-go/messenger"
	"github.com/mantlenetworkio/mantle-tutorial-go/types"
)

func (i *Indexer) processMantleBatch(ctx context.Context, start, end uint64) error {
	withdrawals, err := i.messenger.GetWithdrawals(ctx, messenger.FilterOpts{
		FromBlock:     start,
		ToBlock:       end,
		Batch:         end - start + 1,
		IncludeERC721: i.opts.IncludeERC721,
	})
	if err != nil {
		return fmt.Errorf("failed to index L2 withdrawals: %w", err)
	}

	times := newBlockTimes(i.mantle.Client)
	txs := make([]models.Transaction, 0, len(withdrawals))
	for _, withdrawal := range withdrawals {
		messages, err := i.messenger.CrossChainMessages(ctx, withdrawal.TransactionHash)
		if err != nil {
			return err
		}
		msg, err := messageAfter(messages, withdrawal.LogIndex)
		if err != nil {
			return fmt.Errorf("withdrawal %s: %w", withdrawal.TransactionHash.Hex(), err)
		}
		messageHash, err := crossdomain.HashCrossDomainMessage(msg)
		if err != nil {
			return err
		}
		// the withdrawal hash joins the portal's proven and finalized records
		low, err := i.messenger.ToLowLevelMessage(ctx, msg)
		if err != nil {
			return err
		}
		blockTime, err := times.get(ctx, withdrawal.BlockNumber)
		if err != nil {
			return err
		}

		tx := newTransaction(models.TypeWithdrawal, withdrawal, messageHash, blockTime, types.StateRootNotPublished)
		tx.WithdrawalHash = low.WithdrawalHash.Hex()
		txs = append(txs, tx)
	}

	if err := i.store.BatchCreateTransactions(ctx, txs); err != nil {
		return err
	}
	i.metrics.RecordIndexed(models.TypeWithdrawal, len(txs))
	if len(txs) > 0 {
		i.logger.Info("indexed withdrawals", "count", len(txs), "startBlock", start, "endBlock", end)
	}
	return nil
}
