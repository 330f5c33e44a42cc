package indexer

import (
	"context"
	"fmt"
	"math/big"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/mantlenetworkio/mantle-tutorial-go/contracts"
	"github.com/mantlenetworkio/mantle-tutorial-go/crossdomain"
	"github.com/mantlenetworkio/mantle-tutorial-go/database/models"
	"github.com/mantlenetworkio/mantle-tutorial-go/messenger"
	"github.com/mantlenetworkio/mantle-tutorial-go/types"
)

func (i *Indexer) processEthereumBatch(ctx context.Context, start, end uint64) error {
	if err := i.indexDeposits(ctx, start, end); err != nil {
		return fmt.Errorf("failed to index L1 deposits: %w", err)
	}

	portal := i.ethereum.Opts.OptimismPortalAddress
	if portal == (common.Address{}) {
		return nil
	}
	if err := i.indexPortalEvents(ctx, portal, start, end); err != nil {
		return fmt.Errorf("failed to index portal events: %w", err)
	}
	return nil
}

func (i *Indexer) indexDeposits(ctx context.Context, start, end uint64) error {
	deposits, err := i.messenger.GetDeposits(ctx, messenger.FilterOpts{
		FromBlock:     start,
		ToBlock:       end,
		Batch:         end - start + 1,
		IncludeERC721: i.opts.IncludeERC721,
	})
	if err != nil {
		return err
	}

	times := newBlockTimes(i.ethereum.Client)
	txs := make([]models.Transaction, 0, len(deposits))
	for _, deposit := range deposits {
		messages, err := i.messenger.CrossChainMessages(ctx, deposit.TransactionHash)
		if err != nil {
			return err
		}
		msg, err := messageAfter(messages, deposit.LogIndex)
		if err != nil {
			return fmt.Errorf("deposit %s: %w", deposit.TransactionHash.Hex(), err)
		}
		messageHash, err := crossdomain.HashCrossDomainMessage(msg)
		if err != nil {
			return err
		}
		blockTime, err := times.get(ctx, deposit.BlockNumber)
		if err != nil {
			return err
		}

		txs = append(txs, newTransaction(models.TypeDeposit, deposit, messageHash, blockTime, types.UnconfirmedL1ToL2Message))
	}

	if err := i.store.BatchCreateTransactions(ctx, txs); err != nil {
		return err
	}
	i.metrics.RecordIndexed(models.TypeDeposit, len(txs))
	if len(txs) > 0 {
		i.logger.Info("indexed deposits", "count", len(txs), "startBlock", start, "endBlock", end)
	}
	return nil
}

// portalEvent is a decoded WithdrawalProven or WithdrawalFinalized log.
type portalEvent struct {
	Proven         bool
	WithdrawalHash common.Hash
	Success        bool
	Log            *ethtypes.Log
}

func decodePortalLog(log *ethtypes.Log) (*portalEvent, error) {
	if len(log.Topics) == 0 {
		return nil, fmt.Errorf("anonymous portal log")
	}

	ev := &portalEvent{Log: log}
	switch log.Topics[0] {
	case contracts.WithdrawalProven.Topic0:
		var from, to common.Address
		if err := contracts.WithdrawalProven.DecodeArgs(log, &ev.WithdrawalHash, &from, &to); err != nil {
			return nil, fmt.Errorf("failed to decode WithdrawalProven: %w", err)
		}
		ev.Proven = true
	case contracts.WithdrawalFinalized.Topic0:
		if err := contracts.WithdrawalFinalized.DecodeArgs(log, &ev.WithdrawalHash, &ev.Success); err != nil {
			return nil, fmt.Errorf("failed to decode WithdrawalFinalized: %w", err)
		}
	default:
		return nil, fmt.Errorf("unexpected portal event %s", log.Topics[0].Hex())
	}
	return ev, nil
}

// indexPortalEvents records proofs and finalizations. The records are joined
// to withdrawals by hash, so they may land before the withdrawal is indexed.
func (i *Indexer) indexPortalEvents(ctx context.Context, portal common.Address, start, end uint64) error {
	logs, err := i.ethereum.FilterLogs(ctx, geth.FilterQuery{
		FromBlock: new(big.Int).SetUint64(start),
		ToBlock:   new(big.Int).SetUint64(end),
		Addresses: []common.Address{portal},
		Topics:    [][]common.Hash{{contracts.WithdrawalProven.Topic0, contracts.WithdrawalFinalized.Topic0}},
	})
	if err != nil {
		return err
	}

	times := newBlockTimes(i.ethereum.Client)
	for idx := range logs {
		ev, err := decodePortalLog(&logs[idx])
		if err != nil {
			return err
		}

		receipt, err := i.ethereum.TransactionReceipt(ctx, ev.Log.TxHash)
		if err != nil {
			return err
		}

		if ev.Proven {
			i.logger.Info("withdrawal proven", "withdrawalHash", ev.WithdrawalHash.Hex())
			proven, err := i.ethereum.ProvenWithdrawals(ctx, ev.WithdrawalHash)
			if err != nil {
				return err
			}
			if err := i.store.CreateTransactionProven(ctx, models.TransactionProven{
				WithdrawalHash: ev.WithdrawalHash.Hex(),
				TxHash:         ev.Log.TxHash.Hex(),
				BlockNumber:    ev.Log.BlockNumber,
				Timestamp:      proven.Timestamp.Uint64(),
				L2OutputIndex:  proven.L2OutputIndex.Uint64(),
				GasUsed:        receipt.GasUsed,
			}); err != nil {
				return err
			}
			continue
		}

		i.logger.Info("withdrawal finalized", "withdrawalHash", ev.WithdrawalHash.Hex(), "success", ev.Success)
		blockTime, err := times.get(ctx, ev.Log.BlockNumber)
		if err != nil {
			return err
		}
		if err := i.store.CreateTransactionFinalized(ctx, models.TransactionFinalized{
			WithdrawalHash: ev.WithdrawalHash.Hex(),
			TxHash:         ev.Log.TxHash.Hex(),
			BlockNumber:    ev.Log.BlockNumber,
			Timestamp:      blockTime,
			Success:        ev.Success,
			GasUsed:        receipt.GasUsed,
		}); err != nil {
			return err
		}
	}
	return nil
}
