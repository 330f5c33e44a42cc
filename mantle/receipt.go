package mantle

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Receipt carries the fee fields Mantle adds to transaction receipts.
type Receipt struct {
	TxHash            common.Hash
	GasUsed           uint64
	EffectiveGasPrice *big.Int
	L1Fee             *big.Int
	L1GasUsed         *big.Int
	L1GasPrice        *big.Int
	L1FeeScalar       string
	TokenRatio        *big.Int
}

type rpcReceipt struct {
	TransactionHash   common.Hash    `json:"transactionHash"`
	GasUsed           hexutil.Uint64 `json:"gasUsed"`
	EffectiveGasPrice *hexutil.Big   `json:"effectiveGasPrice"`
	L1Fee             *hexutil.Big   `json:"l1Fee"`
	L1GasUsed         *hexutil.Big   `json:"l1GasUsed"`
	L1GasPrice        *hexutil.Big   `json:"l1GasPrice"`
	L1FeeScalar       string         `json:"l1FeeScalar"`
	TokenRatio        *hexutil.Big   `json:"tokenRatio"`
}

func (r *rpcReceipt) toReceipt() *Receipt {
	return &Receipt{
		TxHash:            r.TransactionHash,
		GasUsed:           uint64(r.GasUsed),
		EffectiveGasPrice: toBig(r.EffectiveGasPrice),
		L1Fee:             toBig(r.L1Fee),
		L1GasUsed:         toBig(r.L1GasUsed),
		L1GasPrice:        toBig(r.L1GasPrice),
		L1FeeScalar:       r.L1FeeScalar,
		TokenRatio:        toBig(r.TokenRatio),
	}
}

// MantleReceipt reads the receipt through the raw RPC so the L1 fee fields survive decoding.
func (c *Client) MantleReceipt(ctx context.Context, txHash common.Hash) (*Receipt, error) {
	var raw *rpcReceipt
	if err := c.RPC().CallContext(ctx, &raw, "eth_getTransactionReceipt", txHash); err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("receipt for %s not found", txHash.Hex())
	}
	return raw.toReceipt(), nil
}

func toBig(b *hexutil.Big) *big.Int {
	if b == nil {
		return new(big.Int)
	}
	return b.ToInt()
}
