package indexer

import (
	"context"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/mantlenetworkio/mantle-tutorial-go/database/models"
	"github.com/mantlenetworkio/mantle-tutorial-go/types"
)

const statusLookupConcurrency = 4

func (i *Indexer) refreshLoop(ctx context.Context) error {
	for {
		if _, err := i.RefreshStatuses(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if !sleep(ctx, i.opts.StatusCheckInterval) {
			i.logger.Info("shutting down status refresher")
			return nil
		}
	}
}

// RefreshStatuses re-evaluates every pending transfer against the chains and
// stores the statuses that moved. Each transaction is looked up once and its
// transfers are matched by message hash. It returns the number of updates.
func (i *Indexer) RefreshStatuses(ctx context.Context) (int, error) {
	var updated atomic.Int64
	for _, txType := range []string{models.TypeDeposit, models.TypeWithdrawal} {
		pending, err := i.store.GetPendingTransactions(ctx, txType)
		if err != nil {
			return 0, err
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(statusLookupConcurrency)
		for txHash, transfers := range byTxHash(pending) {
			g.Go(func() error {
				statuses, err := i.status.MessageStatuses(gctx, common.HexToHash(txHash))
				if err != nil {
					// retried on the next pass
					i.logger.Warn("failed to get message status", "txHash", txHash, "error", err)
					return nil
				}
				for _, tx := range transfers {
					status, ok := statuses[common.HexToHash(tx.MessageHash)]
					if !ok {
						i.logger.Warn("message not sent by transaction", "txHash", txHash, "messageHash", tx.MessageHash)
						continue
					}
					if !advances(txType, tx.Status, status) {
						continue
					}
					if err := i.store.UpdateTransactionStatus(gctx, txHash, tx.MessageHash, status); err != nil {
						return err
					}
					i.metrics.RecordStatusChange(status)
					i.logger.Info("message status changed", "txHash", txHash, "messageHash", tx.MessageHash, "from", tx.Status, "to", status)
					updated.Add(1)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return int(updated.Load()), err
		}
	}
	return int(updated.Load()), nil
}

func byTxHash(txs []models.Transaction) map[string][]models.Transaction {
	grouped := make(map[string][]models.Transaction)
	for _, tx := range txs {
		grouped[tx.TxHash] = append(grouped[tx.TxHash], tx)
	}
	return grouped
}

// advances reports whether a stored status should be replaced. Withdrawal
// statuses only move forward.
func advances(txType string, stored, observed types.MessageStatus) bool {
	if observed == stored {
		return false
	}
	if txType == models.TypeWithdrawal {
		return observed > stored
	}
	return true
}
