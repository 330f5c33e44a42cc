package ethereum

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/mantlenetworkio/mantle-tutorial-go/chain"
	"github.com/mantlenetworkio/mantle-tutorial-go/contracts"
)

type L1StandardBridge interface {
	DepositETH(ctx context.Context, s *chain.Signer, amount *big.Int, minGasLimit uint32, opts chain.TxOpts) (*types.Transaction, error)
	DepositMNT(ctx context.Context, s *chain.Signer, amount *big.Int, minGasLimit uint32, opts chain.TxOpts) (*types.Transaction, error)
	DepositERC20(ctx context.Context, s *chain.Signer, l1Token, l2Token common.Address, amount *big.Int, minGasLimit uint32, opts chain.TxOpts) (*types.Transaction, error)
	DepositERC721(ctx context.Context, s *chain.Signer, l1Token, l2Token common.Address, tokenId *big.Int, minGasLimit uint32, opts chain.TxOpts) (*types.Transaction, error)
}

var _ L1StandardBridge = &Client{}

func (c *Client) DepositETH(ctx context.Context, s *chain.Signer, amount *big.Int, minGasLimit uint32, opts chain.TxOpts) (*types.Transaction, error) {
	if err := chain.CheckAddress(c.Opts.L1StandardBridgeAddress, "L1 standard bridge", "--l1-bridge / L1_BRIDGE"); err != nil {
		return nil, err
	}
	data, opts, err := depositETHCall(amount, minGasLimit, opts)
	if err != nil {
		return nil, err
	}
	return c.Transact(ctx, s, c.Opts.L1StandardBridgeAddress, data, opts)
}

// depositETHCall sends amount as the call value.
func depositETHCall(amount *big.Int, minGasLimit uint32, opts chain.TxOpts) ([]byte, chain.TxOpts, error) {
	data, err := contracts.DepositETH.EncodeArgs(minGasLimit, []byte{})
	if err != nil {
		return nil, opts, fmt.Errorf("failed to encode depositETH: %w", err)
	}
	opts.Value = amount
	return data, opts, nil
}

// DepositMNT pulls the L1 MNT token through the bridge, so the bridge needs an allowance first.
func (c *Client) DepositMNT(ctx context.Context, s *chain.Signer, amount *big.Int, minGasLimit uint32, opts chain.TxOpts) (*types.Transaction, error) {
	if err := chain.CheckAddress(c.Opts.L1StandardBridgeAddress, "L1 standard bridge", "--l1-bridge / L1_BRIDGE"); err != nil {
		return nil, err
	}
	data, opts, err := depositMNTCall(amount, minGasLimit, opts)
	if err != nil {
		return nil, err
	}
	return c.Transact(ctx, s, c.Opts.L1StandardBridgeAddress, data, opts)
}

// depositMNTCall carries amount in the calldata and sends no ETH.
func depositMNTCall(amount *big.Int, minGasLimit uint32, opts chain.TxOpts) ([]byte, chain.TxOpts, error) {
	data, err := contracts.DepositMNT.EncodeArgs(amount, minGasLimit, []byte{})
	if err != nil {
		return nil, opts, fmt.Errorf("failed to encode depositMNT: %w", err)
	}
	opts.Value = nil
	return data, opts, nil
}

func (c *Client) DepositERC20(ctx context.Context, s *chain.Signer, l1Token, l2Token common.Address, amount *big.Int, minGasLimit uint32, opts chain.TxOpts) (*types.Transaction, error) {
	if err := chain.CheckAddress(c.Opts.L1StandardBridgeAddress, "L1 standard bridge", "--l1-bridge / L1_BRIDGE"); err != nil {
		return nil, err
	}
	data, err := contracts.DepositERC20.EncodeArgs(l1Token, l2Token, amount, minGasLimit, []byte{})
	if err != nil {
		return nil, fmt.Errorf("failed to encode depositERC20: %w", err)
	}
	return c.Transact(ctx, s, c.Opts.L1StandardBridgeAddress, data, opts)
}

func (c *Client) DepositERC721(ctx context.Context, s *chain.Signer, l1Token, l2Token common.Address, tokenId *big.Int, minGasLimit uint32, opts chain.TxOpts) (*types.Transaction, error) {
	if err := chain.CheckAddress(c.Opts.L1ERC721BridgeAddress, "L1 ERC721 bridge", "--l1-erc721-bridge / L1_ERC721_BRIDGE"); err != nil {
		return nil, err
	}
	data, err := contracts.BridgeERC721.EncodeArgs(l1Token, l2Token, tokenId, minGasLimit, []byte{})
	if err != nil {
		return nil, fmt.Errorf("failed to encode bridgeERC721: %w", err)
	}
	return c.Transact(ctx, s, c.Opts.L1ERC721BridgeAddress, data, opts)
}
