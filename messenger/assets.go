package messenger

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/mantlenetworkio/mantle-tutorial-go/chain"
)

// BridgeOpts tunes a bridge transaction. Zero values fall back to defaults.
type BridgeOpts struct {
	// MinGasLimit is the gas the message gets when relayed on the other chain.
	MinGasLimit uint32
	// GasLimit overrides the estimated gas of the transaction itself.
	GasLimit uint64
}

func (o BridgeOpts) minGas() uint32 {
	if o.MinGasLimit == 0 {
		return DefaultMinGasLimit
	}
	return o.MinGasLimit
}

func (o BridgeOpts) txOpts() chain.TxOpts {
	return chain.TxOpts{GasLimit: o.GasLimit}
}

// ApproveERC20 lets the L1 standard bridge pull amount of l1Token. This also
// covers L1 MNT.
func (m *CrossChainMessenger) ApproveERC20(ctx context.Context, l1Token, l2Token common.Address, amount *big.Int) (*types.Transaction, error) {
	s, err := m.Signer()
	if err != nil {
		return nil, err
	}
	if l1Token == (common.Address{}) {
		return nil, fmt.Errorf("ETH does not need an approval")
	}
	bridge := m.l1.Opts.L1StandardBridgeAddress
	if err := chain.CheckAddress(bridge, "L1 standard bridge", "--l1-bridge / L1_BRIDGE"); err != nil {
		return nil, err
	}
	m.logger.Debug("Approving bridge", "l1Token", l1Token.Hex(), "l2Token", l2Token.Hex(), "amount", amount)
	return m.l1.ApproveERC20(ctx, s, l1Token, bridge, amount)
}

func (m *CrossChainMessenger) DepositETH(ctx context.Context, amount *big.Int, opts BridgeOpts) (*types.Transaction, error) {
	s, err := m.Signer()
	if err != nil {
		return nil, err
	}
	return m.l1.DepositETH(ctx, s, amount, opts.minGas(), opts.txOpts())
}

func (m *CrossChainMessenger) DepositMNT(ctx context.Context, amount *big.Int, opts BridgeOpts) (*types.Transaction, error) {
	s, err := m.Signer()
	if err != nil {
		return nil, err
	}
	return m.l1.DepositMNT(ctx, s, amount, opts.minGas(), opts.txOpts())
}

// DepositERC20 routes L1 MNT through depositMNT, everything else through depositERC20.
func (m *CrossChainMessenger) DepositERC20(ctx context.Context, l1Token, l2Token common.Address, amount *big.Int, opts BridgeOpts) (*types.Transaction, error) {
	if mnt := m.l1.Opts.L1MNTAddress; mnt != (common.Address{}) && l1Token == mnt {
		return m.DepositMNT(ctx, amount, opts)
	}
	s, err := m.Signer()
	if err != nil {
		return nil, err
	}
	return m.l1.DepositERC20(ctx, s, l1Token, l2Token, amount, opts.minGas(), opts.txOpts())
}

func (m *CrossChainMessenger) WithdrawETH(ctx context.Context, amount *big.Int, opts BridgeOpts) (*types.Transaction, error) {
	s, err := m.Signer()
	if err != nil {
		return nil, err
	}
	return m.l2.WithdrawETH(ctx, s, amount, opts.minGas(), opts.txOpts())
}

func (m *CrossChainMessenger) WithdrawMNT(ctx context.Context, amount *big.Int, opts BridgeOpts) (*types.Transaction, error) {
	s, err := m.Signer()
	if err != nil {
		return nil, err
	}
	return m.l2.WithdrawMNT(ctx, s, amount, opts.minGas(), opts.txOpts())
}

// WithdrawERC20 burns l2Token. The L1 token is implied by the L2 token and
// only logged.
func (m *CrossChainMessenger) WithdrawERC20(ctx context.Context, l1Token, l2Token common.Address, amount *big.Int, opts BridgeOpts) (*types.Transaction, error) {
	s, err := m.Signer()
	if err != nil {
		return nil, err
	}
	m.logger.Debug("Withdrawing ERC20", "l1Token", l1Token.Hex(), "l2Token", l2Token.Hex(), "amount", amount)
	return m.l2.WithdrawERC20(ctx, s, l2Token, amount, opts.minGas(), opts.txOpts())
}

// ERC721Approval reports whether the L1 ERC721 bridge may move the signer's l1Token.
func (m *CrossChainMessenger) ERC721Approval(ctx context.Context, l1Token, l2Token common.Address) (bool, error) {
	s, err := m.Signer()
	if err != nil {
		return false, err
	}
	bridge := m.l1.Opts.L1ERC721BridgeAddress
	if err := chain.CheckAddress(bridge, "L1 ERC721 bridge", "--l1-erc721-bridge / L1_ERC721_BRIDGE"); err != nil {
		return false, err
	}
	return m.l1.IsApprovedForAll(ctx, l1Token, s.Address(), bridge)
}

func (m *CrossChainMessenger) ApproveERC721(ctx context.Context, l1Token, l2Token common.Address) (*types.Transaction, error) {
	s, err := m.Signer()
	if err != nil {
		return nil, err
	}
	bridge := m.l1.Opts.L1ERC721BridgeAddress
	if err := chain.CheckAddress(bridge, "L1 ERC721 bridge", "--l1-erc721-bridge / L1_ERC721_BRIDGE"); err != nil {
		return nil, err
	}
	return m.l1.SetApprovalForAll(ctx, s, l1Token, bridge)
}

func (m *CrossChainMessenger) DepositERC721(ctx context.Context, l1Token, l2Token common.Address, tokenId *big.Int, opts BridgeOpts) (*types.Transaction, error) {
	s, err := m.Signer()
	if err != nil {
		return nil, err
	}
	return m.l1.DepositERC721(ctx, s, l1Token, l2Token, tokenId, opts.minGas(), opts.txOpts())
}

func (m *CrossChainMessenger) WithdrawERC721(ctx context.Context, l1Token, l2Token common.Address, tokenId *big.Int, opts BridgeOpts) (*types.Transaction, error) {
	s, err := m.Signer()
	if err != nil {
		return nil, err
	}
	return m.l2.WithdrawERC721(ctx, s, l2Token, l1Token, tokenId, opts.minGas(), opts.txOpts())
}
