package mantle

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/lmittmann/w3/module/eth"

	"github.com/mantlenetworkio/mantle-tutorial-go/contracts"
)

// GasEstimate is the split of an L2 transaction's cost between the L1 data
// fee and L2 execution.
type GasEstimate struct {
	L1Gas        *big.Int
	L1GasCost    *big.Int
	L2Gas        *big.Int
	L2GasCost    *big.Int
	TotalGasCost *big.Int
}

// PopulateTransaction fills nonce, gas and fees of a call from the given
// account, producing the unsigned transaction the estimates are based on.
func (c *Client) PopulateTransaction(ctx context.Context, from common.Address, to *common.Address, data []byte, value *big.Int) (*types.Transaction, error) {
	client := c.Eth()

	nonce, err := client.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}
	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}
	gas, err := client.EstimateGas(ctx, ethereum.CallMsg{From: from, To: to, Data: data, Value: value})
	if err != nil {
		return nil, fmt.Errorf("failed to estimate gas: %w", err)
	}
	if value == nil {
		value = new(big.Int)
	}

	return types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gas,
		To:       to,
		Value:    value,
		Data:     data,
	}), nil
}

func serialize(tx *types.Transaction) ([]byte, error) {
	raw, err := tx.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize transaction: %w", err)
	}
	return raw, nil
}

// EstimateL1Gas is the L1 gas the oracle charges for the transaction data.
func (c *Client) EstimateL1Gas(ctx context.Context, tx *types.Transaction) (*big.Int, error) {
	raw, err := serialize(tx)
	if err != nil {
		return nil, err
	}
	var gas *big.Int
	if err := c.Call(ctx, eth.CallFunc(c.Opts.GasPriceOracleAddress, contracts.GetL1GasUsed, raw).Returns(&gas)); err != nil {
		return nil, fmt.Errorf("failed to get L1 gas used: %w", err)
	}
	return gas, nil
}

// EstimateL1GasCost is the L1 data fee in wei.
func (c *Client) EstimateL1GasCost(ctx context.Context, tx *types.Transaction) (*big.Int, error) {
	raw, err := serialize(tx)
	if err != nil {
		return nil, err
	}
	var fee *big.Int
	if err := c.Call(ctx, eth.CallFunc(c.Opts.GasPriceOracleAddress, contracts.GetL1Fee, raw).Returns(&fee)); err != nil {
		return nil, fmt.Errorf("failed to get L1 fee: %w", err)
	}
	return fee, nil
}

// EstimateL2GasCost is the execution gas times the current gas price.
func (c *Client) EstimateL2GasCost(ctx context.Context, tx *types.Transaction) (*big.Int, error) {
	gasPrice, err := c.Eth().SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}
	return new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(tx.Gas())), nil
}

func (c *Client) EstimateTotalGasCost(ctx context.Context, tx *types.Transaction) (*big.Int, error) {
	l1, err := c.EstimateL1GasCost(ctx, tx)
	if err != nil {
		return nil, err
	}
	l2, err := c.EstimateL2GasCost(ctx, tx)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Add(l1, l2), nil
}

// EstimateGas collects every estimate for tx in one go.
func (c *Client) EstimateGas(ctx context.Context, tx *types.Transaction) (*GasEstimate, error) {
	raw, err := serialize(tx)
	if err != nil {
		return nil, err
	}
	gasPrice, err := c.Eth().SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}

	est := GasEstimate{L2Gas: new(big.Int).SetUint64(tx.Gas())}
	oracle := c.Opts.GasPriceOracleAddress
	if err := c.Call(ctx,
		eth.CallFunc(oracle, contracts.GetL1GasUsed, raw).Returns(&est.L1Gas),
		eth.CallFunc(oracle, contracts.GetL1Fee, raw).Returns(&est.L1GasCost),
	); err != nil {
		return nil, fmt.Errorf("failed to query gas price oracle: %w", err)
	}

	est.L2GasCost = new(big.Int).Mul(gasPrice, est.L2Gas)
	est.TotalGasCost = new(big.Int).Add(est.L1GasCost, est.L2GasCost)
	return &est, nil
}

// OracleParams are the current inputs of the L1 fee formula.
type OracleParams struct {
	GasPrice   *big.Int
	L1BaseFee  *big.Int
	TokenRatio *big.Int
}

func (c *Client) OracleParams(ctx context.Context) (*OracleParams, error) {
	var p OracleParams
	oracle := c.Opts.GasPriceOracleAddress
	if err := c.Call(ctx,
		eth.CallFunc(oracle, contracts.GasPrice).Returns(&p.GasPrice),
		eth.CallFunc(oracle, contracts.L1BaseFee).Returns(&p.L1BaseFee),
		eth.CallFunc(oracle, contracts.TokenRatio).Returns(&p.TokenRatio),
	); err != nil {
		return nil, fmt.Errorf("failed to query gas price oracle: %w", err)
	}
	return &p, nil
}
