package mantle

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/mantlenetworkio/mantle-tutorial-go/chain"
	"github.com/mantlenetworkio/mantle-tutorial-go/contracts"
)

type L2StandardBridge interface {
	WithdrawETH(ctx context.Context, s *chain.Signer, amount *big.Int, minGasLimit uint32, opts chain.TxOpts) (*types.Transaction, error)
	WithdrawMNT(ctx context.Context, s *chain.Signer, amount *big.Int, minGasLimit uint32, opts chain.TxOpts) (*types.Transaction, error)
	WithdrawERC20(ctx context.Context, s *chain.Signer, l2Token common.Address, amount *big.Int, minGasLimit uint32, opts chain.TxOpts) (*types.Transaction, error)
	WithdrawERC721(ctx context.Context, s *chain.Signer, l2Token, l1Token common.Address, tokenId *big.Int, minGasLimit uint32, opts chain.TxOpts) (*types.Transaction, error)
}

var _ L2StandardBridge = &Client{}

// WithdrawETH burns the BVM_ETH representation of ETH on L2.
func (c *Client) WithdrawETH(ctx context.Context, s *chain.Signer, amount *big.Int, minGasLimit uint32, opts chain.TxOpts) (*types.Transaction, error) {
	return c.withdraw(ctx, s, contracts.BVMETHAddr, amount, minGasLimit, opts)
}

// WithdrawMNT sends native MNT along with the call.
func (c *Client) WithdrawMNT(ctx context.Context, s *chain.Signer, amount *big.Int, minGasLimit uint32, opts chain.TxOpts) (*types.Transaction, error) {
	return c.withdraw(ctx, s, contracts.LegacyMNTAddr, amount, minGasLimit, opts)
}

func (c *Client) WithdrawERC20(ctx context.Context, s *chain.Signer, l2Token common.Address, amount *big.Int, minGasLimit uint32, opts chain.TxOpts) (*types.Transaction, error) {
	return c.withdraw(ctx, s, l2Token, amount, minGasLimit, opts)
}

func (c *Client) withdraw(ctx context.Context, s *chain.Signer, l2Token common.Address, amount *big.Int, minGasLimit uint32, opts chain.TxOpts) (*types.Transaction, error) {
	data, opts, err := withdrawCall(l2Token, amount, minGasLimit, opts)
	if err != nil {
		return nil, err
	}
	return c.Transact(ctx, s, c.Opts.L2StandardBridgeAddress, data, opts)
}

// withdrawCall builds withdraw(l2Token, amount). MNT is the native token on
// Mantle and leaves as call value, every other token is burned from the
// sender's balance.
func withdrawCall(l2Token common.Address, amount *big.Int, minGasLimit uint32, opts chain.TxOpts) ([]byte, chain.TxOpts, error) {
	data, err := contracts.Withdraw.EncodeArgs(l2Token, amount, minGasLimit, []byte{})
	if err != nil {
		return nil, opts, fmt.Errorf("failed to encode withdraw: %w", err)
	}
	if l2Token == contracts.LegacyMNTAddr {
		opts.Value = amount
	} else {
		opts.Value = nil
	}
	return data, opts, nil
}

func (c *Client) WithdrawERC721(ctx context.Context, s *chain.Signer, l2Token, l1Token common.Address, tokenId *big.Int, minGasLimit uint32, opts chain.TxOpts) (*types.Transaction, error) {
	data, err := contracts.BridgeERC721.EncodeArgs(l2Token, l1Token, tokenId, minGasLimit, []byte{})
	if err != nil {
		return nil, fmt.Errorf("failed to encode bridgeERC721: %w", err)
	}
	return c.Transact(ctx, s, c.Opts.L2ERC721BridgeAddress, data, opts)
}
