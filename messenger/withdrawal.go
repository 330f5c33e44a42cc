package messenger

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/mantlenetworkio/mantle-tutorial-go/contracts"
	"github.com/mantlenetworkio/mantle-tutorial-go/crossdomain"
	"github.com/mantlenetworkio/mantle-tutorial-go/types"
)

// WithdrawalProof is everything proveWithdrawalTransaction takes besides the withdrawal.
type WithdrawalProof struct {
	OutputIndex     uint64
	OutputRootProof contracts.OutputRootProof
	StorageProof    [][]byte
}

// ProveMessage proves the withdrawal sent by txHash against the latest output
// root that covers it.
func (m *CrossChainMessenger) ProveMessage(ctx context.Context, txHash common.Hash, opts BridgeOpts) (*ethtypes.Transaction, error) {
	s, err := m.Signer()
	if err != nil {
		return nil, err
	}
	msg, withdrawal, err := m.withdrawalIn(ctx, txHash, types.ReadyToProve)
	if err != nil {
		return nil, err
	}

	proof, err := m.BuildWithdrawalProof(ctx, msg, withdrawal)
	if err != nil {
		return nil, err
	}

	m.logger.Info("Proving withdrawal", "tx", txHash.Hex(), "withdrawalHash", withdrawal.WithdrawalHash.Hex(), "l2OutputIndex", proof.OutputIndex)
	return m.l1.ProveWithdrawalTransaction(ctx, s, toWithdrawalTransaction(withdrawal), bigFromUint(proof.OutputIndex), proof.OutputRootProof, proof.StorageProof, opts.txOpts())
}

// FinalizeMessage relays a proven withdrawal whose challenge period is over.
func (m *CrossChainMessenger) FinalizeMessage(ctx context.Context, txHash common.Hash, opts BridgeOpts) (*ethtypes.Transaction, error) {
	s, err := m.Signer()
	if err != nil {
		return nil, err
	}
	_, withdrawal, err := m.withdrawalIn(ctx, txHash, types.ReadyForRelay)
	if err != nil {
		return nil, err
	}

	m.logger.Info("Finalizing withdrawal", "tx", txHash.Hex(), "withdrawalHash", withdrawal.WithdrawalHash.Hex())
	return m.l1.FinalizeWithdrawalTransaction(ctx, s, toWithdrawalTransaction(withdrawal), opts.txOpts())
}

// withdrawalIn resolves the withdrawal of txHash and checks it is in the wanted status.
func (m *CrossChainMessenger) withdrawalIn(ctx context.Context, txHash common.Hash, want types.MessageStatus) (*types.CrossChainMessage, *types.Withdrawal, error) {
	msg, err := m.ToCrossChainMessage(ctx, txHash, 0)
	if err != nil {
		return nil, nil, err
	}
	if msg.Direction != types.L2ToL1 {
		return nil, nil, fmt.Errorf("%w: %s is a deposit", ErrWrongDirection, txHash.Hex())
	}

	status, err := m.MessageStatus(ctx, msg)
	if err != nil {
		return nil, nil, err
	}
	if status != want {
		return nil, nil, fmt.Errorf("%w: wanted %s, message is %s", ErrUnexpectedStatus, want, status)
	}

	withdrawal, err := m.ToLowLevelMessage(ctx, msg)
	if err != nil {
		return nil, nil, err
	}
	return msg, withdrawal, nil
}

// BuildWithdrawalProof collects the output root proof and the storage proof
// of the withdrawal in the message passer at the output's L2 block.
func (m *CrossChainMessenger) BuildWithdrawalProof(ctx context.Context, msg *types.CrossChainMessage, withdrawal *types.Withdrawal) (*WithdrawalProof, error) {
	index, err := m.l1.L2OutputIndexAfter(ctx, bigFromUint(msg.BlockNumber))
	if err != nil {
		return nil, err
	}
	output, err := m.l1.L2Output(ctx, index)
	if err != nil {
		return nil, err
	}

	block, err := m.l2.BlockInfo(ctx, output.L2BlockNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get L2 block %s: %w", output.L2BlockNumber, err)
	}

	slot := crossdomain.StorageSlotOfWithdrawalHash(withdrawal.WithdrawalHash)
	accountProof, err := m.l2.GetProof(ctx, m.l2.Opts.L2ToL1MessagePasserAddress, []common.Hash{slot}, output.L2BlockNumber)
	if err != nil {
		return nil, err
	}
	if len(accountProof.StorageProofs) != 1 {
		return nil, fmt.Errorf("expected one storage proof, got %d", len(accountProof.StorageProofs))
	}

	return &WithdrawalProof{
		OutputIndex: index.Uint64(),
		OutputRootProof: contracts.OutputRootProof{
			StateRoot:                block.StateRoot,
			MessagePasserStorageRoot: accountProof.StorageHash,
			LatestBlockhash:          block.Hash,
		},
		StorageProof: accountProof.StorageProofs[0],
	}, nil
}

// ProveAndWait and FinalizeAndWait are the blocking forms used by the demos.
func (m *CrossChainMessenger) ProveAndWait(ctx context.Context, txHash common.Hash, opts BridgeOpts) (*ethtypes.Receipt, error) {
	tx, err := m.ProveMessage(ctx, txHash, opts)
	if err != nil {
		return nil, err
	}
	return m.l1.WaitMined(ctx, tx)
}

func (m *CrossChainMessenger) FinalizeAndWait(ctx context.Context, txHash common.Hash, opts BridgeOpts) (*ethtypes.Receipt, error) {
	tx, err := m.FinalizeMessage(ctx, txHash, opts)
	if err != nil {
		return nil, err
	}
	return m.l1.WaitMined(ctx, tx)
}

func bigFromUint(v uint64) *big.Int {
	return new(big.Int).SetUint64(v)
}
