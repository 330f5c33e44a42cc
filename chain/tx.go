package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

var ErrTransactionFailed = errors.New("transaction reverted")

// Signer is the account the demos send transactions from. The same key is
// used on both chains.
type Signer struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

func NewSigner(hexKey string) (*Signer, error) {
	key, err := crypto.HexToECDSA(trimHexPrefix(hexKey))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	return &Signer{key: key, address: crypto.PubkeyToAddress(key.PublicKey)}, nil
}

func (s *Signer) Address() common.Address {
	return s.address
}

// TxOpts overrides the defaults a transaction is sent with. Zero values mean
// "estimate" or "suggest".
type TxOpts struct {
	Value     *big.Int
	GasLimit  uint64
	GasFeeCap *big.Int
	GasTipCap *big.Int
}

func (c *Client) transactOpts(ctx context.Context, s *Signer, opts TxOpts) (*bind.TransactOpts, error) {
	auth, err := bind.NewKeyedTransactorWithChainID(s.key, c.chainId)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	auth.Context = ctx
	auth.Value = opts.Value
	auth.GasLimit = opts.GasLimit
	auth.GasFeeCap = opts.GasFeeCap
	auth.GasTipCap = opts.GasTipCap
	return auth, nil
}

// Transact signs and sends calldata to the given contract. It does not wait
// for the transaction to be mined.
func (c *Client) Transact(ctx context.Context, s *Signer, to common.Address, calldata []byte, opts TxOpts) (*types.Transaction, error) {
	auth, err := c.transactOpts(ctx, s, opts)
	if err != nil {
		return nil, err
	}

	// a dummy bound contract tied to the destination, calldata is prepacked
	contract := bind.NewBoundContract(to, abi.ABI{}, c.client, c.client, c.client)
	tx, err := contract.RawTransact(auth, calldata)
	if err != nil {
		return nil, fmt.Errorf("failed to send transaction to %s: %w", to.Hex(), err)
	}

	c.logger.Debug("transaction sent", "hash", tx.Hash().Hex(), "to", to.Hex(), "nonce", tx.Nonce())
	return tx, nil
}

// WaitMined blocks until the transaction is included and fails if it reverted.
func (c *Client) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, c.client, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for transaction %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("%w: %s (gas used %d)", ErrTransactionFailed, tx.Hash().Hex(), receipt.GasUsed)
	}
	return receipt, nil
}

// SendAndWait is Transact followed by WaitMined.
func (c *Client) SendAndWait(ctx context.Context, s *Signer, to common.Address, calldata []byte, opts TxOpts) (*types.Receipt, error) {
	tx, err := c.Transact(ctx, s, to, calldata, opts)
	if err != nil {
		return nil, err
	}
	return c.WaitMined(ctx, tx)
}

// Deploy deploys a contract from its ABI and creation bytecode and waits for it.
func (c *Client) Deploy(ctx context.Context, s *Signer, contractAbi abi.ABI, bytecode []byte, opts TxOpts, args ...interface{}) (common.Address, *types.Receipt, error) {
	auth, err := c.transactOpts(ctx, s, opts)
	if err != nil {
		return common.Address{}, nil, err
	}

	addr, tx, _, err := bind.DeployContract(auth, contractAbi, bytecode, c.client, args...)
	if err != nil {
		return common.Address{}, nil, fmt.Errorf("failed to deploy contract: %w", err)
	}

	receipt, err := c.WaitMined(ctx, tx)
	if err != nil {
		return common.Address{}, nil, err
	}
	return addr, receipt, nil
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}
