package messenger

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantlenetworkio/mantle-tutorial-go/contracts"
	"github.com/mantlenetworkio/mantle-tutorial-go/types"
)

var (
	l1Token = common.HexToAddress("0x1111111111111111111111111111111111111111")
	l2Token = common.HexToAddress("0x2222222222222222222222222222222222222222")
	l1MNT   = common.HexToAddress("0x3333333333333333333333333333333333333333")
)

func TestDecodeBridgeLog(t *testing.T) {
	mapping := tokenMapping{l1MNT: l1MNT}

	eth := &ethtypes.Log{
		Topics:      []common.Hash{contracts.ETHBridgeInitiated.Topic0, addrTopic(sender), addrTopic(sender)},
		Data:        pack(t, []string{"uint256", "bytes"}, big.NewInt(1e18), []byte{}),
		BlockNumber: 10,
	}
	msg, err := decodeBridgeLog(eth, types.L1ToL2, mapping)
	require.NoError(t, err)
	assert.Equal(t, types.TokenETH, msg.Kind)
	assert.Equal(t, sender, msg.From)
	assert.Equal(t, contracts.BVMETHAddr, msg.L2Token)
	assert.Equal(t, 0, big.NewInt(1e18).Cmp(msg.Amount))

	mnt := &ethtypes.Log{
		Topics: []common.Hash{contracts.MNTBridgeInitiated.Topic0, addrTopic(sender), addrTopic(target)},
		Data:   pack(t, []string{"uint256", "bytes"}, big.NewInt(5), []byte{}),
	}
	msg, err = decodeBridgeLog(mnt, types.L2ToL1, mapping)
	require.NoError(t, err)
	assert.Equal(t, types.TokenMNT, msg.Kind)
	assert.Equal(t, target, msg.To)
	assert.Equal(t, l1MNT, msg.L1Token)
	assert.Equal(t, contracts.LegacyMNTAddr, msg.L2Token)

	erc20 := func() *ethtypes.Log {
		return &ethtypes.Log{
			Topics: []common.Hash{contracts.ERC20BridgeInitiated.Topic0, addrTopic(l2Token), addrTopic(l1Token), addrTopic(sender)},
			Data:   pack(t, []string{"address", "uint256", "bytes"}, sender, big.NewInt(100), []byte{}),
		}
	}
	msg, err = decodeBridgeLog(erc20(), types.L2ToL1, mapping)
	require.NoError(t, err)
	assert.Equal(t, types.TokenERC20, msg.Kind)
	assert.Equal(t, l1Token, msg.L1Token)
	assert.Equal(t, l2Token, msg.L2Token)
	assert.Equal(t, int64(100), msg.Amount.Int64())

	nft := &ethtypes.Log{
		Topics: []common.Hash{contracts.ERC721BridgeInitiated.Topic0, addrTopic(l1Token), addrTopic(l2Token), addrTopic(sender)},
		Data:   pack(t, []string{"address", "uint256", "bytes"}, sender, big.NewInt(7), []byte{}),
	}
	msg, err = decodeBridgeLog(nft, types.L1ToL2, mapping)
	require.NoError(t, err)
	assert.Equal(t, types.TokenERC721, msg.Kind)
	assert.Equal(t, l1Token, msg.L1Token)
	assert.Equal(t, int64(7), msg.Amount.Int64())

	_, err = decodeBridgeLog(&ethtypes.Log{Topics: []common.Hash{{1}}}, types.L1ToL2, mapping)
	require.Error(t, err)
}

func TestSortNewestFirst(t *testing.T) {
	messages := []*types.TokenBridgeMessage{
		{BlockNumber: 1, LogIndex: 0},
		{BlockNumber: 5, LogIndex: 1},
		{BlockNumber: 5, LogIndex: 3},
		{BlockNumber: 2, LogIndex: 0},
	}
	sortNewestFirst(messages)

	var order [][2]uint64
	for _, m := range messages {
		order = append(order, [2]uint64{m.BlockNumber, uint64(m.LogIndex)})
	}
	assert.Equal(t, [][2]uint64{{5, 3}, {5, 1}, {2, 0}, {1, 0}}, order)
}

func TestBridgeOptsDefaults(t *testing.T) {
	assert.Equal(t, DefaultMinGasLimit, BridgeOpts{}.minGas())
	assert.Equal(t, uint32(400000), BridgeOpts{MinGasLimit: 400000}.minGas())
	assert.Equal(t, uint64(4700000), BridgeOpts{GasLimit: 4700000}.txOpts().GasLimit)
}
