package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/lmittmann/w3/module/eth"

	"github.com/mantlenetworkio/mantle-tutorial-go/contracts"
)

// TokenInfo is the ERC20 metadata needed to display amounts.
type TokenInfo struct {
	Symbol   string
	Decimals uint8
}

// TokenInfo returns symbol and decimals of an ERC20, cached per address.
func (c *Client) TokenInfo(ctx context.Context, token common.Address) (TokenInfo, error) {
	if info, ok := c.tokens.Get(token); ok {
		return info, nil
	}

	var info TokenInfo
	if err := c.Call(ctx,
		eth.CallFunc(token, contracts.Symbol).Returns(&info.Symbol),
		eth.CallFunc(token, contracts.Decimals).Returns(&info.Decimals),
	); err != nil {
		return TokenInfo{}, fmt.Errorf("failed to get token info of %s: %w", token.Hex(), err)
	}

	c.tokens.Add(token, info)
	return info, nil
}

func (c *Client) ERC20Balance(ctx context.Context, token, owner common.Address) (*big.Int, error) {
	var balance *big.Int
	if err := c.Call(ctx, eth.CallFunc(token, contracts.BalanceOf, owner).Returns(&balance)); err != nil {
		return nil, fmt.Errorf("failed to get token balance: %w", err)
	}
	return balance, nil
}

func (c *Client) Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	var allowance *big.Int
	if err := c.Call(ctx, eth.CallFunc(token, contracts.Allowance, owner, spender).Returns(&allowance)); err != nil {
		return nil, fmt.Errorf("failed to get allowance: %w", err)
	}
	return allowance, nil
}

// ERC721Balance shares the balanceOf selector with ERC20.
func (c *Client) ERC721Balance(ctx context.Context, token, owner common.Address) (*big.Int, error) {
	return c.ERC20Balance(ctx, token, owner)
}

func (c *Client) IsApprovedForAll(ctx context.Context, token, owner, operator common.Address) (bool, error) {
	var approved bool
	if err := c.Call(ctx, eth.CallFunc(token, contracts.IsApprovedForAll, owner, operator).Returns(&approved)); err != nil {
		return false, fmt.Errorf("failed to get approval: %w", err)
	}
	return approved, nil
}

func (c *Client) ApproveERC20(ctx context.Context, s *Signer, token, spender common.Address, amount *big.Int) (*types.Transaction, error) {
	data, err := contracts.Approve.EncodeArgs(spender, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to encode approve: %w", err)
	}
	return c.Transact(ctx, s, token, data, TxOpts{})
}

func (c *Client) SetApprovalForAll(ctx context.Context, s *Signer, token, operator common.Address) (*types.Transaction, error) {
	data, err := contracts.SetApprovalForAll.EncodeArgs(operator, true)
	if err != nil {
		return nil, fmt.Errorf("failed to encode setApprovalForAll: %w", err)
	}
	return c.Transact(ctx, s, token, data, TxOpts{})
}

// Greet reads greet() from one of the Greeter contracts.
func (c *Client) Greet(ctx context.Context, greeter common.Address) (string, error) {
	var greeting string
	if err := c.Call(ctx, eth.CallFunc(greeter, contracts.Greet).Returns(&greeting)); err != nil {
		return "", fmt.Errorf("failed to read greeting: %w", err)
	}
	return greeting, nil
}
