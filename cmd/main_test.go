package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/mantlenetworkio/mantle-tutorial-go/chain"
	"github.com/mantlenetworkio/mantle-tutorial-go/config"
)

func loadWith(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()
	var (
		cfg     *config.Config
		loadErr error
	)
	app := &cli.App{
		Name:  "test",
		Flags: globalFlags(),
		Action: func(c *cli.Context) error {
			cfg, loadErr = loadConfig(c)
			return nil
		},
	}
	require.NoError(t, app.RunContext(context.Background(), append([]string{"test"}, args...)))
	return cfg, loadErr
}

func TestLoadConfigDevnetPreset(t *testing.T) {
	cfg, err := loadWith(t)
	require.NoError(t, err)

	assert.Equal(t, "devnet", cfg.Network)
	assert.Equal(t, "http://127.0.0.1:9545", cfg.L1RPC)
	assert.Equal(t, "http://127.0.0.1:8545", cfg.L2RPC)
	assert.Equal(t, uint64(31337), cfg.L1ChainID)
	assert.Equal(t, uint64(17), cfg.L2ChainID)
	assert.Equal(t, "0x01BDCf509fE69a87b9787d85728193bAbD5A3d25", cfg.L1MNT)
	assert.Zero(t, cfg.Timeout)

	signer, err := chain.NewSigner(cfg.PrivateKey)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0x23618e81E3f5cdF7f54C3d65f7FBc0aBf5B21E8f"), signer.Address())
}

func TestLoadConfigPublicPresets(t *testing.T) {
	for _, network := range []string{"sepolia", "mainnet"} {
		t.Run(network, func(t *testing.T) {
			cfg, err := loadWith(t, "--network", network)
			require.NoError(t, err)

			opts, err := cfg.EthereumOpts(slog.Default())
			require.NoError(t, err)
			assert.NotZero(t, opts.L1StandardBridgeAddress)
			assert.NotZero(t, opts.L1CrossDomainMessengerAddress)
			assert.NotZero(t, opts.OptimismPortalAddress)
			assert.NotZero(t, opts.L2OutputOracleAddress)
			assert.NotZero(t, opts.L1MNTAddress)
		})
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("L1_BRIDGE", "0x0000000000000000000000000000000000000abc")
	cfg, err := loadWith(t, "--l1-rpc", "http://l1:8545", "--l2-chainid", "5003", "--timeout", "90s")
	require.NoError(t, err)

	assert.Equal(t, "http://l1:8545", cfg.L1RPC)
	assert.Equal(t, uint64(5003), cfg.L2ChainID)
	assert.Equal(t, "0x0000000000000000000000000000000000000abc", cfg.L1Bridge)
	assert.Equal(t, "1m30s", cfg.Timeout.String())
}

func TestLoadConfigNeedsRPC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "networks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bare:\n  l2:\n    rpc: http://l2\n"), 0o644))
	_, err := loadWith(t, "--networks-file", path, "--network", "bare")
	require.ErrorContains(t, err, "L1_RPC")

	_, err = loadWith(t, "--network", "nope")
	require.Error(t, err)
}

func TestTxHashArg(t *testing.T) {
	parse := func(arg string) error {
		set := flag.NewFlagSet("test", flag.ContinueOnError)
		require.NoError(t, set.Parse([]string{arg}))
		_, err := txHashArg(cli.NewContext(nil, set, nil))
		return err
	}

	assert.NoError(t, parse("0x6d2bb1d0a5a4c0ef2a5bd7e3a10e0cda8c5d7a1b5e4f3a2b1c0d9e8f7a6b5c4d"))
	assert.Error(t, parse("0x1234"))
	assert.Error(t, parse("hello"))
}

func TestCommandsRegistered(t *testing.T) {
	app := newApp()
	for _, name := range []string{
		"bridge-eth", "bridge-erc20", "bridge-mnt", "bridge-erc721",
		"comm", "estimate-gas", "view-tx", "standard-token", "custom-token", "deploy",
		"message-status", "wait", "prove", "finalize", "serve",
	} {
		assert.NotNil(t, app.Command(name), name)
	}
}
