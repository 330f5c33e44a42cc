package ethereum

import (
	"context"
	"fmt"
	"math/big"

	"github.com/lmittmann/w3/module/eth"

	"github.com/mantlenetworkio/mantle-tutorial-go/chain"
	"github.com/mantlenetworkio/mantle-tutorial-go/contracts"
)

type L2OutputOracle interface {
	LatestL2BlockNumber(ctx context.Context) (*big.Int, error)
	L2OutputIndexAfter(ctx context.Context, l2BlockNumber *big.Int) (*big.Int, error)
	L2Output(ctx context.Context, index *big.Int) (*contracts.OutputProposal, error)
	FinalizationPeriodSeconds(ctx context.Context) (*big.Int, error)
}

var _ L2OutputOracle = &Client{}

func (c *Client) oracle() error {
	return chain.CheckAddress(c.Opts.L2OutputOracleAddress, "L2OutputOracle", "--l1-output-oracle / L1_OUTPUT_ORACLE")
}

// LatestL2BlockNumber is the highest L2 block covered by a proposed output.
func (c *Client) LatestL2BlockNumber(ctx context.Context) (*big.Int, error) {
	if err := c.oracle(); err != nil {
		return nil, err
	}
	var n *big.Int
	if err := c.Call(ctx, eth.CallFunc(c.Opts.L2OutputOracleAddress, contracts.LatestBlockNumber).Returns(&n)); err != nil {
		return nil, fmt.Errorf("failed to get latest output block: %w", err)
	}
	return n, nil
}

func (c *Client) L2OutputIndexAfter(ctx context.Context, l2BlockNumber *big.Int) (*big.Int, error) {
	if err := c.oracle(); err != nil {
		return nil, err
	}
	var idx *big.Int
	if err := c.Call(ctx, eth.CallFunc(c.Opts.L2OutputOracleAddress, contracts.GetL2OutputIndexAfter, l2BlockNumber).Returns(&idx)); err != nil {
		return nil, fmt.Errorf("failed to get output index: %w", err)
	}
	return idx, nil
}

func (c *Client) L2Output(ctx context.Context, index *big.Int) (*contracts.OutputProposal, error) {
	if err := c.oracle(); err != nil {
		return nil, err
	}
	var out contracts.OutputProposal
	if err := c.Call(ctx, eth.CallFunc(c.Opts.L2OutputOracleAddress, contracts.GetL2Output, index).Returns(&out)); err != nil {
		return nil, fmt.Errorf("failed to get output %s: %w", index, err)
	}
	return &out, nil
}

func (c *Client) FinalizationPeriodSeconds(ctx context.Context) (*big.Int, error) {
	if err := c.oracle(); err != nil {
		return nil, err
	}
	var period *big.Int
	if err := c.Call(ctx, eth.CallFunc(c.Opts.L2OutputOracleAddress, contracts.FinalizationPeriodSeconds).Returns(&period)); err != nil {
		return nil, fmt.Errorf("failed to get finalization period: %w", err)
	}
	return period, nil
}
