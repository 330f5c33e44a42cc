package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/lmittmann/w3/w3types"
)

func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	return retry(ctx, "get block number", func() (uint64, error) {
		return c.client.BlockNumber(ctx)
	})
}

func (c *Client) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	return retry(ctx, "get transaction receipt", func() (*types.Receipt, error) {
		return c.client.TransactionReceipt(ctx, txHash)
	})
}

// TryTransactionReceipt asks once. It is used to find out which chain a
// transaction belongs to, so a miss must not be retried.
func (c *Client) TryTransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	return c.client.TransactionReceipt(ctx, txHash)
}

func (c *Client) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	return retry(ctx, "get header by number", func() (*types.Header, error) {
		return c.client.HeaderByNumber(ctx, number)
	})
}

func (c *Client) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	return retry(ctx, "get balance", func() (*big.Int, error) {
		return c.client.BalanceAt(ctx, account, nil)
	})
}

func (c *Client) FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	return retry(ctx, "filter logs", func() ([]types.Log, error) {
		return c.client.FilterLogs(ctx, q)
	})
}

// Call executes the given w3 calls in a single batch request.
func (c *Client) Call(ctx context.Context, calls ...w3types.RPCCaller) error {
	_, err := retry(ctx, "call contract", func() (struct{}, error) {
		return struct{}{}, c.w3.CallCtx(ctx, calls...)
	})
	return err
}

// BlockInfo is the subset of a block the withdrawal proof needs.
type BlockInfo struct {
	Number    uint64
	Hash      common.Hash
	StateRoot common.Hash
	Timestamp uint64
}

// BlockInfo reads the block straight from eth_getBlockByNumber so the hash is
// the one the node reports, whatever extra header fields the chain carries.
func (c *Client) BlockInfo(ctx context.Context, number *big.Int) (*BlockInfo, error) {
	tag := "latest"
	if number != nil {
		tag = hexutil.EncodeBig(number)
	}

	var result struct {
		Number    hexutil.Uint64 `json:"number"`
		Hash      common.Hash    `json:"hash"`
		StateRoot common.Hash    `json:"stateRoot"`
		Timestamp hexutil.Uint64 `json:"timestamp"`
	}

	_, err := retry(ctx, "get block", func() (struct{}, error) {
		return struct{}{}, c.rpc.CallContext(ctx, &result, "eth_getBlockByNumber", tag, false)
	})
	if err != nil {
		return nil, err
	}
	if result.Hash == (common.Hash{}) {
		return nil, fmt.Errorf("block %s not found", tag)
	}

	return &BlockInfo{
		Number:    uint64(result.Number),
		Hash:      result.Hash,
		StateRoot: result.StateRoot,
		Timestamp: uint64(result.Timestamp),
	}, nil
}

// GetProof fetches the account and storage proof for the given slots.
func (c *Client) GetProof(ctx context.Context, account common.Address, slots []common.Hash, number *big.Int) (*AccountProof, error) {
	keys := make([]string, len(slots))
	for i, s := range slots {
		keys[i] = s.Hex()
	}

	res, err := c.proof.GetProof(ctx, account, keys, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get proof: %w", err)
	}

	proof := &AccountProof{StorageHash: res.StorageHash}
	for _, sp := range res.StorageProof {
		nodes := make([][]byte, len(sp.Proof))
		for i, n := range sp.Proof {
			if nodes[i], err = hexutil.Decode(n); err != nil {
				return nil, fmt.Errorf("failed to decode proof node: %w", err)
			}
		}
		proof.StorageProofs = append(proof.StorageProofs, nodes)
	}
	return proof, nil
}

type AccountProof struct {
	StorageHash   common.Hash
	StorageProofs [][][]byte
}
