package mantle

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/lmittmann/w3"

	"github.com/mantlenetworkio/mantle-tutorial-go/chain"
	"github.com/mantlenetworkio/mantle-tutorial-go/contracts"
)

// CreateOptimismMintableERC20 deploys the L2 representation of an L1 ERC20
// through the factory predeploy and returns its address.
func (c *Client) CreateOptimismMintableERC20(ctx context.Context, s *chain.Signer, l1Token common.Address, name, symbol string) (common.Address, error) {
	data, err := contracts.CreateOptimismMintableERC20.EncodeArgs(l1Token, name, symbol)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to encode createOptimismMintableERC20: %w", err)
	}
	receipt, err := c.SendAndWait(ctx, s, c.Opts.OptimismMintableERC20FactoryAddress, data, chain.TxOpts{})
	if err != nil {
		return common.Address{}, err
	}
	return createdToken(receipt, contracts.OptimismMintableERC20Created, true)
}

// CreateStandardL2Token is the legacy factory entry point. It emits both the
// legacy and the bedrock creation events.
func (c *Client) CreateStandardL2Token(ctx context.Context, s *chain.Signer, l1Token common.Address, name, symbol string) (common.Address, error) {
	data, err := contracts.CreateStandardL2Token.EncodeArgs(l1Token, name, symbol)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to encode createStandardL2Token: %w", err)
	}
	receipt, err := c.SendAndWait(ctx, s, c.Opts.OptimismMintableERC20FactoryAddress, data, chain.TxOpts{})
	if err != nil {
		return common.Address{}, err
	}
	return createdToken(receipt, contracts.StandardL2TokenCreated, false)
}

func (c *Client) CreateOptimismMintableERC721(ctx context.Context, s *chain.Signer, l1Token common.Address, name, symbol string) (common.Address, error) {
	data, err := contracts.CreateOptimismMintableERC721.EncodeArgs(l1Token, name, symbol)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to encode createOptimismMintableERC721: %w", err)
	}
	receipt, err := c.SendAndWait(ctx, s, c.Opts.OptimismMintableERC721FactoryAddress, data, chain.TxOpts{})
	if err != nil {
		return common.Address{}, err
	}
	return createdToken(receipt, contracts.OptimismMintableERC721Created, true)
}

// createdToken finds the local token address in the factory event. localFirst
// tells whether the local token is the first indexed argument.
func createdToken(receipt *types.Receipt, event *w3.Event, localFirst bool) (common.Address, error) {
	for _, log := range receipt.Logs {
		if len(log.Topics) < 3 || log.Topics[0] != event.Topic0 {
			continue
		}
		if localFirst {
			return common.BytesToAddress(log.Topics[1].Bytes()), nil
		}
		return common.BytesToAddress(log.Topics[2].Bytes()), nil
	}
	return common.Address{}, fmt.Errorf("no token creation event in transaction %s", receipt.TxHash.Hex())
}
