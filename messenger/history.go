package messenger

import (
	"context"
	"fmt"
	"sort"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/mantlenetworkio/mantle-tutorial-go/chain"
	"github.com/mantlenetworkio/mantle-tutorial-go/contracts"
	"github.com/mantlenetworkio/mantle-tutorial-go/types"
)

type FilterOpts struct {
	FromBlock uint64
	// ToBlock of zero scans up to the head.
	ToBlock uint64
	// Batch is the block range of a single eth_getLogs call.
	Batch         uint64
	IncludeERC721 bool
}

// tokenMapping fills in the token pair of ETH and MNT transfers, whose events
// carry no token addresses.
type tokenMapping struct {
	l1MNT common.Address
}

// GetDepositsByAddress lists the bridge deposits sent from addr on L1, newest first.
func (m *CrossChainMessenger) GetDepositsByAddress(ctx context.Context, addr common.Address, opts FilterOpts) ([]*types.TokenBridgeMessage, error) {
	return m.deposits(ctx, []common.Hash{common.BytesToHash(addr.Bytes())}, opts)
}

// GetDeposits lists the bridge deposits of every sender in the block range.
func (m *CrossChainMessenger) GetDeposits(ctx context.Context, opts FilterOpts) ([]*types.TokenBridgeMessage, error) {
	return m.deposits(ctx, nil, opts)
}

// GetWithdrawalsByAddress lists the bridge withdrawals sent from addr on L2, newest first.
func (m *CrossChainMessenger) GetWithdrawalsByAddress(ctx context.Context, addr common.Address, opts FilterOpts) ([]*types.TokenBridgeMessage, error) {
	return m.withdrawals(ctx, []common.Hash{common.BytesToHash(addr.Bytes())}, opts)
}

// GetWithdrawals lists the bridge withdrawals of every sender in the block range.
func (m *CrossChainMessenger) GetWithdrawals(ctx context.Context, opts FilterOpts) ([]*types.TokenBridgeMessage, error) {
	return m.withdrawals(ctx, nil, opts)
}

func (m *CrossChainMessenger) deposits(ctx context.Context, from []common.Hash, opts FilterOpts) ([]*types.TokenBridgeMessage, error) {
	bridge := m.l1.Opts.L1StandardBridgeAddress
	if err := chain.CheckAddress(bridge, "L1 standard bridge", "--l1-bridge / L1_BRIDGE"); err != nil {
		return nil, err
	}
	var erc721Bridge common.Address
	if opts.IncludeERC721 {
		erc721Bridge = m.l1.Opts.L1ERC721BridgeAddress
	}
	return m.bridgeHistory(ctx, m.l1.Client, types.L1ToL2, bridge, erc721Bridge, from, opts)
}

func (m *CrossChainMessenger) withdrawals(ctx context.Context, from []common.Hash, opts FilterOpts) ([]*types.TokenBridgeMessage, error) {
	var erc721Bridge common.Address
	if opts.IncludeERC721 {
		erc721Bridge = m.l2.Opts.L2ERC721BridgeAddress
	}
	return m.bridgeHistory(ctx, m.l2.Client, types.L2ToL1, m.l2.Opts.L2StandardBridgeAddress, erc721Bridge, from, opts)
}

// bridgeHistory scans the bridge initiation events. A nil from matches any sender.
func (m *CrossChainMessenger) bridgeHistory(ctx context.Context, c *chain.Client, direction types.MessageDirection, bridge, erc721Bridge common.Address, from []common.Hash, opts FilterOpts) ([]*types.TokenBridgeMessage, error) {
	queries := []geth.FilterQuery{
		{
			Addresses: []common.Address{bridge},
			Topics:    [][]common.Hash{{contracts.ETHBridgeInitiated.Topic0, contracts.MNTBridgeInitiated.Topic0}, from},
		},
		{
			Addresses: []common.Address{bridge},
			Topics:    [][]common.Hash{{contracts.ERC20BridgeInitiated.Topic0}, nil, nil, from},
		},
	}
	if erc721Bridge != (common.Address{}) {
		queries = append(queries, geth.FilterQuery{
			Addresses: []common.Address{erc721Bridge},
			Topics:    [][]common.Hash{{contracts.ERC721BridgeInitiated.Topic0}, nil, nil, from},
		})
	}

	mapping := tokenMapping{l1MNT: m.l1.Opts.L1MNTAddress}
	var messages []*types.TokenBridgeMessage
	for _, q := range queries {
		logs, err := c.ScanLogs(ctx, q, opts.FromBlock, opts.ToBlock, opts.Batch)
		if err != nil {
			return nil, err
		}
		for i := range logs {
			msg, err := decodeBridgeLog(&logs[i], direction, mapping)
			if err != nil {
				return nil, err
			}
			messages = append(messages, msg)
		}
	}

	sortNewestFirst(messages)
	return messages, nil
}

func decodeBridgeLog(log *ethtypes.Log, direction types.MessageDirection, mapping tokenMapping) (*types.TokenBridgeMessage, error) {
	if len(log.Topics) == 0 {
		return nil, fmt.Errorf("anonymous log in bridge history")
	}

	msg := &types.TokenBridgeMessage{
		Direction:       direction,
		TransactionHash: log.TxHash,
		LogIndex:        log.Index,
		BlockNumber:     log.BlockNumber,
	}

	var (
		local, remote common.Address
		err           error
	)
	switch log.Topics[0] {
	case contracts.ETHBridgeInitiated.Topic0:
		msg.Kind = types.TokenETH
		err = contracts.ETHBridgeInitiated.DecodeArgs(log, &msg.From, &msg.To, &msg.Amount, &msg.Data)
		msg.L1Token, msg.L2Token = common.Address{}, contracts.BVMETHAddr
		return msg, wrapDecode("ETHBridgeInitiated", err)
	case contracts.MNTBridgeInitiated.Topic0:
		msg.Kind = types.TokenMNT
		err = contracts.MNTBridgeInitiated.DecodeArgs(log, &msg.From, &msg.To, &msg.Amount, &msg.Data)
		msg.L1Token, msg.L2Token = mapping.l1MNT, contracts.LegacyMNTAddr
		return msg, wrapDecode("MNTBridgeInitiated", err)
	case contracts.ERC20BridgeInitiated.Topic0:
		msg.Kind = types.TokenERC20
		err = contracts.ERC20BridgeInitiated.DecodeArgs(log, &local, &remote, &msg.From, &msg.To, &msg.Amount, &msg.Data)
	case contracts.ERC721BridgeInitiated.Topic0:
		msg.Kind = types.TokenERC721
		err = contracts.ERC721BridgeInitiated.DecodeArgs(log, &local, &remote, &msg.From, &msg.To, &msg.Amount, &msg.Data)
	default:
		return nil, fmt.Errorf("unexpected event %s in bridge history", log.Topics[0].Hex())
	}
	if err != nil {
		return nil, wrapDecode(string(msg.Kind)+"BridgeInitiated", err)
	}

	// local is the token on the chain the event was emitted on
	if direction == types.L1ToL2 {
		msg.L1Token, msg.L2Token = local, remote
	} else {
		msg.L1Token, msg.L2Token = remote, local
	}
	return msg, nil
}

func wrapDecode(event string, err error) error {
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", event, err)
	}
	return nil
}

func sortNewestFirst(messages []*types.TokenBridgeMessage) {
	sort.SliceStable(messages, func(i, j int) bool {
		if messages[i].BlockNumber != messages[j].BlockNumber {
			return messages[i].BlockNumber > messages[j].BlockNumber
		}
		return messages[i].LogIndex > messages[j].LogIndex
	})
}
