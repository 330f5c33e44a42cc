package messenger

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mantlenetworkio/mantle-tutorial-go/crossdomain"
	"github.com/mantlenetworkio/mantle-tutorial-go/types"
)

// GetMessageStatus reports the status of the first message sent by txHash.
func (m *CrossChainMessenger) GetMessageStatus(ctx context.Context, txHash common.Hash) (types.MessageStatus, error) {
	msg, err := m.ToCrossChainMessage(ctx, txHash, 0)
	if err != nil {
		return 0, err
	}
	return m.MessageStatus(ctx, msg)
}

// MessageStatuses reports the status of every message sent by txHash, keyed
// by message hash.
func (m *CrossChainMessenger) MessageStatuses(ctx context.Context, txHash common.Hash) (map[common.Hash]types.MessageStatus, error) {
	messages, err := m.CrossChainMessages(ctx, txHash)
	if err != nil {
		return nil, err
	}
	statuses := make(map[common.Hash]types.MessageStatus, len(messages))
	for _, msg := range messages {
		msgHash, err := crossdomain.HashCrossDomainMessage(msg)
		if err != nil {
			return nil, err
		}
		status, err := m.messageStatus(ctx, msg, msgHash)
		if err != nil {
			return nil, err
		}
		statuses[msgHash] = status
	}
	return statuses, nil
}

// MessageStatus reports the status of an already resolved message.
func (m *CrossChainMessenger) MessageStatus(ctx context.Context, msg *types.CrossChainMessage) (types.MessageStatus, error) {
	msgHash, err := crossdomain.HashCrossDomainMessage(msg)
	if err != nil {
		return 0, err
	}
	return m.messageStatus(ctx, msg, msgHash)
}

func (m *CrossChainMessenger) messageStatus(ctx context.Context, msg *types.CrossChainMessage, msgHash common.Hash) (types.MessageStatus, error) {
	m.metrics.RecordStatusPoll(msg.Direction)

	if msg.Direction == types.L1ToL2 {
		successful, failed, err := m.l2.MessageReceipt(ctx, msgHash)
		if err != nil {
			return 0, err
		}
		return depositStatus(successful, failed), nil
	}

	state, err := m.withdrawalState(ctx, msg, msgHash)
	if err != nil {
		return 0, err
	}
	return state.status(), nil
}

func depositStatus(successful, failed bool) types.MessageStatus {
	switch {
	case successful:
		return types.Relayed
	case failed:
		return types.FailedL1ToL2Message
	default:
		return types.UnconfirmedL1ToL2Message
	}
}

// withdrawalState holds what L1 knows about an L2 to L1 message. Fields past
// the first deciding one are left zero.
type withdrawalState struct {
	Relayed            bool
	WithdrawalBlock    uint64
	LatestOutputBlock  uint64
	ProvenTimestamp    uint64
	FinalizationPeriod uint64
	L1Timestamp        uint64
}

func (s withdrawalState) status() types.MessageStatus {
	switch {
	case s.Relayed:
		return types.Relayed
	case s.LatestOutputBlock < s.WithdrawalBlock:
		return types.StateRootNotPublished
	case s.ProvenTimestamp == 0:
		return types.ReadyToProve
	case s.ProvenTimestamp+s.FinalizationPeriod > s.L1Timestamp:
		return types.InChallengePeriod
	default:
		return types.ReadyForRelay
	}
}

func (m *CrossChainMessenger) withdrawalState(ctx context.Context, msg *types.CrossChainMessage, msgHash common.Hash) (withdrawalState, error) {
	s := withdrawalState{WithdrawalBlock: msg.BlockNumber}

	successful, _, err := m.l1.MessageReceipt(ctx, msgHash)
	if err != nil {
		return s, err
	}
	if successful {
		s.Relayed = true
		return s, nil
	}

	latest, err := m.l1.LatestL2BlockNumber(ctx)
	if err != nil {
		return s, err
	}
	s.LatestOutputBlock = latest.Uint64()
	if s.LatestOutputBlock < s.WithdrawalBlock {
		return s, nil
	}

	withdrawal, err := m.ToLowLevelMessage(ctx, msg)
	if err != nil {
		return s, err
	}
	proven, err := m.l1.ProvenWithdrawals(ctx, withdrawal.WithdrawalHash)
	if err != nil {
		return s, err
	}
	s.ProvenTimestamp = proven.Timestamp.Uint64()
	if s.ProvenTimestamp == 0 {
		return s, nil
	}

	period, err := m.l1.FinalizationPeriodSeconds(ctx)
	if err != nil {
		return s, err
	}
	s.FinalizationPeriod = period.Uint64()

	head, err := m.l1.HeaderByNumber(ctx, nil)
	if err != nil {
		return s, fmt.Errorf("failed to get latest L1 block: %w", err)
	}
	s.L1Timestamp = head.Time
	return s, nil
}
