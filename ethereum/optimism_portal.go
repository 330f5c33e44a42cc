package ethereum

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/lmittmann/w3/module/eth"

	"github.com/mantlenetworkio/mantle-tutorial-go/chain"
	"github.com/mantlenetworkio/mantle-tutorial-go/contracts"
)

type OptimismPortal interface {
	ProveWithdrawalTransaction(ctx context.Context, s *chain.Signer, tx contracts.WithdrawalTransaction, l2OutputIndex *big.Int, proof contracts.OutputRootProof, withdrawalProof [][]byte, opts chain.TxOpts) (*types.Transaction, error)
	FinalizeWithdrawalTransaction(ctx context.Context, s *chain.Signer, tx contracts.WithdrawalTransaction, opts chain.TxOpts) (*types.Transaction, error)
	ProvenWithdrawals(ctx context.Context, withdrawalHash common.Hash) (*ProvenWithdrawal, error)
	FinalizedWithdrawals(ctx context.Context, withdrawalHash common.Hash) (bool, error)
}

var _ OptimismPortal = &Client{}

// ProvenWithdrawal is the portal's record of a proven withdrawal. A zero
// Timestamp means the withdrawal has not been proven.
type ProvenWithdrawal struct {
	OutputRoot    common.Hash
	Timestamp     *big.Int
	L2OutputIndex *big.Int
}

func (c *Client) ProveWithdrawalTransaction(ctx context.Context, s *chain.Signer, tx contracts.WithdrawalTransaction, l2OutputIndex *big.Int, proof contracts.OutputRootProof, withdrawalProof [][]byte, opts chain.TxOpts) (*types.Transaction, error) {
	if err := chain.CheckAddress(c.Opts.OptimismPortalAddress, "OptimismPortal", "--l1-portal / L1_PORTAL"); err != nil {
		return nil, err
	}
	data, err := contracts.ProveWithdrawalTransaction.EncodeArgs(tx, l2OutputIndex, proof, withdrawalProof)
	if err != nil {
		return nil, fmt.Errorf("failed to pack proveWithdrawalTransaction: %w", err)
	}
	return c.Transact(ctx, s, c.Opts.OptimismPortalAddress, data, opts)
}

func (c *Client) FinalizeWithdrawalTransaction(ctx context.Context, s *chain.Signer, tx contracts.WithdrawalTransaction, opts chain.TxOpts) (*types.Transaction, error) {
	if err := chain.CheckAddress(c.Opts.OptimismPortalAddress, "OptimismPortal", "--l1-portal / L1_PORTAL"); err != nil {
		return nil, err
	}
	data, err := contracts.FinalizeWithdrawalTransaction.EncodeArgs(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to pack finalizeWithdrawalTransaction: %w", err)
	}
	return c.Transact(ctx, s, c.Opts.OptimismPortalAddress, data, opts)
}

func (c *Client) ProvenWithdrawals(ctx context.Context, withdrawalHash common.Hash) (*ProvenWithdrawal, error) {
	if err := chain.CheckAddress(c.Opts.OptimismPortalAddress, "OptimismPortal", "--l1-portal / L1_PORTAL"); err != nil {
		return nil, err
	}
	var proven ProvenWithdrawal
	if err := c.Call(ctx, eth.CallFunc(c.Opts.OptimismPortalAddress, contracts.ProvenWithdrawals, withdrawalHash).
		Returns(&proven.OutputRoot, &proven.Timestamp, &proven.L2OutputIndex)); err != nil {
		return nil, fmt.Errorf("failed to get proven withdrawal: %w", err)
	}
	return &proven, nil
}

func (c *Client) FinalizedWithdrawals(ctx context.Context, withdrawalHash common.Hash) (bool, error) {
	if err := chain.CheckAddress(c.Opts.OptimismPortalAddress, "OptimismPortal", "--l1-portal / L1_PORTAL"); err != nil {
		return false, err
	}
	var finalized bool
	if err := c.Call(ctx, eth.CallFunc(c.Opts.OptimismPortalAddress, contracts.FinalizedWithdrawals, withdrawalHash).Returns(&finalized)); err != nil {
		return false, fmt.Errorf("failed to get finalized withdrawal: %w", err)
	}
	return finalized, nil
}
