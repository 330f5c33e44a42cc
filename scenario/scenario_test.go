package scenario

import (
	"bytes"
	"context"
	"encoding/json"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantlenetworkio/mantle-tutorial-go/contracts"
	"github.com/mantlenetworkio/mantle-tutorial-go/ethereum"
	"github.com/mantlenetworkio/mantle-tutorial-go/mantle"
	"github.com/mantlenetworkio/mantle-tutorial-go/types"
)

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "0", formatSeconds(0))
	assert.Equal(t, "1.5", formatSeconds(1500*time.Millisecond))
	assert.Equal(t, "62.042", formatSeconds(62042*time.Millisecond+300*time.Microsecond))
}

func TestStopwatch(t *testing.T) {
	var out bytes.Buffer
	start := time.Unix(1700000000, 0)
	now := start
	sw := &stopwatch{start: start, out: &out, now: func() time.Time { return now }}

	now = start.Add(2500 * time.Millisecond)
	sw.lap()
	now = start.Add(10 * time.Second)
	sw.done("depositETH")

	assert.Equal(t, "Time so far 2.5 seconds\ndepositETH took 10 seconds\n\n", out.String())
}

func TestBanner(t *testing.T) {
	var out bytes.Buffer
	env := &Env{Out: &out}
	env.banner("Deposit ETH")
	assert.Equal(t, "#################### Deposit ETH ####################\n", out.String())
}

func TestRenderGasTable(t *testing.T) {
	estimate := &mantle.GasEstimate{
		L1Gas: big.NewInt(1600), L1GasCost: big.NewInt(3000),
		L2Gas: big.NewInt(21000), L2GasCost: big.NewInt(42000),
		TotalGasCost: big.NewInt(45000),
	}
	actual := &mantle.GasEstimate{
		L1Gas: big.NewInt(1600), L1GasCost: big.NewInt(3000),
		L2Gas: big.NewInt(20000), L2GasCost: big.NewInt(40000),
		TotalGasCost: big.NewInt(43000),
	}

	var out bytes.Buffer
	renderGasTable(&out, estimate, actual)
	s := out.String()
	assert.Contains(t, s, "Total gas cost (wei)")
	assert.Contains(t, s, "45000")
	assert.Contains(t, s, "-2000")
	assert.Contains(t, s, "-1000")
}

func TestFormatAmount(t *testing.T) {
	eth := &types.TokenBridgeMessage{Kind: types.TokenETH, Amount: big.NewInt(1e15)}
	assert.Equal(t, "0.001", formatAmount(eth, 18))

	nft := &types.TokenBridgeMessage{Kind: types.TokenERC721, Amount: big.NewInt(7)}
	assert.Equal(t, "#7", formatAmount(nft, 0))
}

func TestTokenLabelNative(t *testing.T) {
	for kind, want := range map[types.TokenKind]string{
		types.TokenETH:    "ETH",
		types.TokenMNT:    "MNT",
		types.TokenERC721: "ERC721",
	} {
		symbol, _, err := tokenLabel(t.Context(), &Env{}, &types.TokenBridgeMessage{Kind: kind})
		require.NoError(t, err)
		assert.Equal(t, want, symbol)
	}
}

func TestRenderTxTable(t *testing.T) {
	hash := common.HexToHash("0x01")
	var out bytes.Buffer
	renderTxTable(&out, []txRow{{TxHash: hash, Amount: "1.5", Symbol: "MNT", Relayed: true}})
	s := out.String()
	assert.Contains(t, s, hash.Hex())
	assert.Contains(t, s, "1.5")
	assert.Contains(t, s, "MNT")
	assert.Contains(t, s, "true")
}

func TestTokenListEntryShape(t *testing.T) {
	l1 := common.HexToAddress("0x1111111111111111111111111111111111111111")
	l2 := common.HexToAddress("0x2222222222222222222222222222222222222222")
	raw, err := json.Marshal(newTokenListEntry("L2TOKEN", "L2T", 18, l1, l2))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "L2TOKEN",
		"symbol": "L2T",
		"decimals": 18,
		"tokens": {
			"L1": {"address": "0x1111111111111111111111111111111111111111"},
			"L2": {"address": "0x2222222222222222222222222222222222222222"}
		}
	}`, string(raw))
}

func TestMintedTokenId(t *testing.T) {
	token := common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	owner := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	receipt := &ethtypes.Receipt{
		TxHash: common.HexToHash("0xaa"),
		Logs: []*ethtypes.Log{
			{Address: common.HexToAddress("0x01"), Topics: []common.Hash{contracts.ERC721Transfer.Topic0}},
			{
				Address: token,
				Topics: []common.Hash{
					contracts.ERC721Transfer.Topic0,
					{},
					common.BytesToHash(owner.Bytes()),
					common.BigToHash(big.NewInt(3)),
				},
			},
		},
	}

	id, err := mintedTokenId(receipt, token)
	require.NoError(t, err)
	assert.Equal(t, int64(3), id.Int64())

	_, err = mintedTokenId(&ethtypes.Receipt{}, token)
	require.Error(t, err)
}

func TestConstructorArgs(t *testing.T) {
	contract, err := abi.JSON(bytes.NewReader([]byte(`[{"type":"constructor","inputs":[
		{"name":"greeting","type":"string"},
		{"name":"owner","type":"address"},
		{"name":"supply","type":"uint256"},
		{"name":"decimals","type":"uint8"},
		{"name":"paused","type":"bool"}
	]}]`)))
	require.NoError(t, err)

	args, err := constructorArgs(contract, []string{"hi", "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", "1000000", "18", "false"})
	require.NoError(t, err)
	assert.Equal(t, "hi", args[0])
	assert.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), args[1])
	assert.Equal(t, big.NewInt(1000000), args[2])
	assert.Equal(t, uint8(18), args[3])
	assert.Equal(t, false, args[4])

	_, err = constructorArgs(contract, []string{"hi"})
	require.ErrorContains(t, err, "takes 5 arguments")

	_, err = constructorArgs(contract, []string{"hi", "nope", "1", "1", "true"})
	require.ErrorContains(t, err, "invalid address")

	_, err = constructorArgs(contract, []string{"hi", "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", "1", "256", "true"})
	require.ErrorContains(t, err, "out of range")
}

func TestWithdrawalDemosCheckContractsFirst(t *testing.T) {
	opts := &ethereum.ClientOpts{}
	// no RPC behind the clients, so anything past the check would panic
	env := &Env{L1: &ethereum.Client{Opts: opts}, Out: &bytes.Buffer{}}
	ctx := context.Background()

	require.ErrorContains(t, env.checkWithdrawalContracts(), "--l1-portal / L1_PORTAL")
	require.ErrorContains(t, RunBridgeETH(ctx, env, BridgeETHOpts{}), "L1_PORTAL")
	require.ErrorContains(t, RunBridgeERC20(ctx, env, BridgeERC20Opts{}), "L1_PORTAL")
	require.ErrorContains(t, RunBridgeMNT(ctx, env, BridgeMNTOpts{}), "L1_PORTAL")
	require.ErrorContains(t, RunBridgeERC721(ctx, env, BridgeERC721Opts{}), "L1_PORTAL")
	require.ErrorContains(t, RunCustomToken(ctx, env, CustomTokenOpts{}), "L1_PORTAL")
	require.ErrorContains(t, RunComm(ctx, env, CommOpts{L2ToL1: true}), "L1_PORTAL")

	opts.OptimismPortalAddress = common.HexToAddress("0x0000000000000000000000000000000000000a01")
	require.ErrorContains(t, env.checkWithdrawalContracts(), "--l1-output-oracle / L1_OUTPUT_ORACLE")

	opts.L2OutputOracleAddress = common.HexToAddress("0x0000000000000000000000000000000000000a02")
	require.NoError(t, env.checkWithdrawalContracts())
}

func TestBridgeERC721Defaults(t *testing.T) {
	assert.Equal(t, BridgeERC721Opts{Name: "TEST NFT FOR SDK0", Symbol: "TESTNFT0"}, BridgeERC721Opts{}.withDefaults())
	assert.Equal(t, BridgeERC721Opts{Name: "Mine", Symbol: "TESTNFT0"}, BridgeERC721Opts{Name: "Mine"}.withDefaults())
	assert.Equal(t, BridgeERC721Opts{Name: "TEST NFT FOR SDK0", Symbol: "MINE"}, BridgeERC721Opts{Symbol: "MINE"}.withDefaults())
}

func TestSpentSince(t *testing.T) {
	before := big.NewInt(1000)

	t.Run("waits for the node to catch up", func(t *testing.T) {
		balances := []int64{1000, 1000, 940}
		calls := 0
		spent, err := spentSince(context.Background(), before, time.Millisecond, func(context.Context) (*big.Int, error) {
			b := balances[calls]
			calls++
			return big.NewInt(b), nil
		})
		require.NoError(t, err)
		assert.Equal(t, int64(60), spent.Int64())
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after the retries", func(t *testing.T) {
		calls := 0
		spent, err := spentSince(context.Background(), before, time.Millisecond, func(context.Context) (*big.Int, error) {
			calls++
			return big.NewInt(1000), nil
		})
		require.NoError(t, err)
		assert.Zero(t, spent.Sign())
		assert.Equal(t, balanceRetries, calls)
	})

	t.Run("stops on cancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := spentSince(ctx, before, time.Hour, func(context.Context) (*big.Int, error) {
			return big.NewInt(1000), nil
		})
		require.ErrorIs(t, err, context.Canceled)
	})
}
