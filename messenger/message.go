package messenger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/big"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/mantlenetworkio/mantle-tutorial-go/contracts"
	"github.com/mantlenetworkio/mantle-tutorial-go/crossdomain"
	"github.com/mantlenetworkio/mantle-tutorial-go/types"
)

// ToCrossChainMessage resolves the index-th messenger message sent by txHash.
// The transaction is looked up on L1 first, then on L2.
func (m *CrossChainMessenger) ToCrossChainMessage(ctx context.Context, txHash common.Hash, index int) (*types.CrossChainMessage, error) {
	messages, err := m.CrossChainMessages(ctx, txHash)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(messages) {
		return nil, fmt.Errorf("%w: transaction %s has %d messages, wanted index %d", ErrMessageNotFound, txHash.Hex(), len(messages), index)
	}
	return messages[index], nil
}

// CrossChainMessages returns every messenger message sent by txHash.
func (m *CrossChainMessenger) CrossChainMessages(ctx context.Context, txHash common.Hash) ([]*types.CrossChainMessage, error) {
	receipt, direction, err := m.findReceipt(ctx, txHash)
	if err != nil {
		return nil, err
	}

	messenger := m.l1.Opts.L1CrossDomainMessengerAddress
	if direction == types.L2ToL1 {
		messenger = m.l2.Opts.L2CrossDomainMessengerAddress
	}
	return decodeSentMessages(receipt.Logs, messenger, direction)
}

func (m *CrossChainMessenger) findReceipt(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, types.MessageDirection, error) {
	receipt, err := m.l1.TryTransactionReceipt(ctx, txHash)
	if err == nil {
		return receipt, types.L1ToL2, nil
	}
	if !errors.Is(err, geth.NotFound) {
		return nil, 0, fmt.Errorf("failed to get L1 receipt: %w", err)
	}

	receipt, err = m.l2.TryTransactionReceipt(ctx, txHash)
	if err == nil {
		return receipt, types.L2ToL1, nil
	}
	if !errors.Is(err, geth.NotFound) {
		return nil, 0, fmt.Errorf("failed to get L2 receipt: %w", err)
	}
	return nil, 0, fmt.Errorf("%w: transaction %s is on neither chain", ErrMessageNotFound, txHash.Hex())
}

// decodeSentMessages pairs each SentMessage with the SentMessageExtension1
// emitted right after it.
func decodeSentMessages(logs []*ethtypes.Log, messenger common.Address, direction types.MessageDirection) ([]*types.CrossChainMessage, error) {
	var messages []*types.CrossChainMessage
	for i, log := range logs {
		if log.Address != messenger || len(log.Topics) == 0 || log.Topics[0] != contracts.SentMessage.Topic0 {
			continue
		}

		msg := &types.CrossChainMessage{
			Direction:       direction,
			TransactionHash: log.TxHash,
			LogIndex:        log.Index,
			BlockNumber:     log.BlockNumber,
		}
		if err := contracts.SentMessage.DecodeArgs(log, &msg.Target, &msg.Sender, &msg.Message, &msg.MessageNonce, &msg.MinGasLimit); err != nil {
			return nil, fmt.Errorf("failed to decode SentMessage: %w", err)
		}

		msg.MntValue, msg.EthValue = new(big.Int), new(big.Int)
		if i+1 < len(logs) {
			ext := logs[i+1]
			if ext.Address == messenger && len(ext.Topics) > 0 && ext.Topics[0] == contracts.SentMessageExtension1.Topic0 {
				var sender common.Address
				if err := contracts.SentMessageExtension1.DecodeArgs(ext, &sender, &msg.MntValue, &msg.EthValue); err != nil {
					return nil, fmt.Errorf("failed to decode SentMessageExtension1: %w", err)
				}
			}
		}
		messages = append(messages, msg)
	}

	if len(messages) == 0 {
		return nil, ErrMessageNotFound
	}
	return messages, nil
}

// ToLowLevelMessage finds the withdrawal the L2 messenger passed to the
// L2ToL1MessagePasser for msg.
func (m *CrossChainMessenger) ToLowLevelMessage(ctx context.Context, msg *types.CrossChainMessage) (*types.Withdrawal, error) {
	if msg.Direction != types.L2ToL1 {
		return nil, fmt.Errorf("%w: only L2 to L1 messages have a withdrawal", ErrWrongDirection)
	}

	receipt, err := m.l2.TransactionReceipt(ctx, msg.TransactionHash)
	if err != nil {
		return nil, err
	}
	return matchWithdrawal(receipt.Logs, m.l2.Opts.L2ToL1MessagePasserAddress, m.l2.Opts.L2CrossDomainMessengerAddress, msg)
}

func matchWithdrawal(logs []*ethtypes.Log, passer, l2Messenger common.Address, msg *types.CrossChainMessage) (*types.Withdrawal, error) {
	relay, err := crossdomain.EncodeCrossDomainMessageV1(msg.MessageNonce, msg.Sender, msg.Target, msg.MntValue, msg.EthValue, msg.MinGasLimit, msg.Message)
	if err != nil {
		return nil, err
	}

	for _, log := range logs {
		if log.Address != passer || len(log.Topics) == 0 || log.Topics[0] != contracts.MessagePassed.Topic0 {
			continue
		}

		var w types.Withdrawal
		if err := contracts.MessagePassed.DecodeArgs(log, &w.Nonce, &w.Sender, &w.Target, &w.MntValue, &w.EthValue, &w.GasLimit, &w.Data, &w.WithdrawalHash); err != nil {
			return nil, fmt.Errorf("failed to decode MessagePassed: %w", err)
		}
		if w.Sender != l2Messenger || !bytes.Equal(w.Data, relay) {
			continue
		}

		hash, err := crossdomain.HashWithdrawal(&w)
		if err != nil {
			return nil, err
		}
		if hash != w.WithdrawalHash {
			return nil, fmt.Errorf("withdrawal hash mismatch: computed %s, emitted %s", hash.Hex(), w.WithdrawalHash.Hex())
		}
		return &w, nil
	}
	return nil, fmt.Errorf("%w: no MessagePassed event for message in %s", ErrMessageNotFound, msg.TransactionHash.Hex())
}

func toWithdrawalTransaction(w *types.Withdrawal) contracts.WithdrawalTransaction {
	return contracts.WithdrawalTransaction{
		Nonce:    w.Nonce,
		Sender:   w.Sender,
		Target:   w.Target,
		MntValue: w.MntValue,
		EthValue: w.EthValue,
		GasLimit: w.GasLimit,
		Data:     w.Data,
	}
}
