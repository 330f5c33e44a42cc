package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedNetworks(t *testing.T) {
	networks, err := LoadNetworks("")
	require.NoError(t, err)
	assert.Equal(t, []string{"devnet", "mainnet", "sepolia"}, networks.Names())

	devnet, err := networks.Get("devnet")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9545", devnet.L1.RPC)
	assert.Equal(t, uint64(31337), devnet.L1.ChainID)
	assert.Equal(t, "http://127.0.0.1:8545", devnet.L2.RPC)
	assert.Equal(t, uint64(17), devnet.L2.ChainID)
	assert.Empty(t, devnet.L1.OptimismPortal)

	_, err = networks.Get("nope")
	require.ErrorContains(t, err, "unknown network")
}

func TestNetworksFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "networks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("local:\n  l1:\n    rpc: http://l1\n    optimism_portal: \"0x0000000000000000000000000000000000000001\"\n"), 0o644))

	networks, err := LoadNetworks(path)
	require.NoError(t, err)
	local, err := networks.Get("local")
	require.NoError(t, err)
	assert.Equal(t, "http://l1", local.L1.RPC)
	assert.Equal(t, "0x0000000000000000000000000000000000000001", local.L1.OptimismPortal)
}

func TestApplyNetworkKeepsOverrides(t *testing.T) {
	networks, err := LoadNetworks("")
	require.NoError(t, err)
	devnet, err := networks.Get("devnet")
	require.NoError(t, err)

	cfg := Config{L1RPC: "http://override:9545", L2ChainID: 5003}
	cfg.ApplyNetwork(devnet)

	assert.Equal(t, "http://override:9545", cfg.L1RPC)
	assert.Equal(t, "http://127.0.0.1:8545", cfg.L2RPC)
	assert.Equal(t, uint64(5003), cfg.L2ChainID)
	assert.Equal(t, uint64(31337), cfg.L1ChainID)
	assert.Equal(t, "0x1B0Fd9Df9c444A4CeEC9863B88e1D7Cb3db621c0", cfg.L1Bridge)
	require.NoError(t, cfg.Validate())
}

func TestClientOpts(t *testing.T) {
	cfg := Config{
		L1RPC:    "http://l1",
		L2RPC:    "http://l2",
		L1Bridge: "0x1B0Fd9Df9c444A4CeEC9863B88e1D7Cb3db621c0",
		L1Portal: "not-an-address",
	}

	_, err := cfg.EthereumOpts(slog.Default())
	require.ErrorContains(t, err, "--l1-portal / L1_PORTAL")

	cfg.L1Portal = ""
	opts, err := cfg.EthereumOpts(slog.Default())
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0x1B0Fd9Df9c444A4CeEC9863B88e1D7Cb3db621c0"), opts.L1StandardBridgeAddress)
	assert.Equal(t, common.Address{}, opts.OptimismPortalAddress)

	l2, err := cfg.MantleOpts(slog.Default())
	require.NoError(t, err)
	assert.Equal(t, "http://l2", l2.Endpoint)
}

func TestValidate(t *testing.T) {
	require.ErrorContains(t, (&Config{L2RPC: "x"}).Validate(), "L1_RPC")
	require.ErrorContains(t, (&Config{L1RPC: "x"}).Validate(), "L2_RPC")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "warn", false)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "component", "test")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "component=test")

	_, err = NewLogger(&buf, "loud", false)
	require.Error(t, err)
}
