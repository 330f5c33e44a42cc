package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/mantlenetworkio/mantle-tutorial-go/artifacts"
	"github.com/mantlenetworkio/mantle-tutorial-go/chain"
	"github.com/mantlenetworkio/mantle-tutorial-go/config"
	"github.com/mantlenetworkio/mantle-tutorial-go/ethereum"
	"github.com/mantlenetworkio/mantle-tutorial-go/mantle"
	"github.com/mantlenetworkio/mantle-tutorial-go/messenger"
	"github.com/mantlenetworkio/mantle-tutorial-go/metrics"
	"github.com/mantlenetworkio/mantle-tutorial-go/scenario"
)

// funded on both chains of the local Mantle devnet
const devnetPrivateKey = "dbda1821b80551c9d65939329250298aa3472ba22feea921c0cf5d620ea67b97"

const (
	flagNetwork      = "network"
	flagNetworksFile = "networks-file"
	flagPrivateKey   = "private-key"
	flagLogLevel     = "log-level"
	flagLogColor     = "log-color"
	flagArtifacts    = "artifacts-dir"
	flagPollInterval = "poll-interval"
	flagTimeout      = "timeout"
)

func globalFlags() []cli.Flag {
	str := func(name, env, usage, category string) cli.Flag {
		return &cli.StringFlag{Name: name, EnvVars: []string{env}, Usage: usage, Category: category}
	}

	return []cli.Flag{
		&cli.StringFlag{Name: flagNetwork, EnvVars: []string{"NETWORK"}, Value: "devnet", Usage: "network preset (devnet, sepolia, mainnet)"},
		&cli.StringFlag{Name: flagNetworksFile, EnvVars: []string{"NETWORKS_FILE"}, Usage: "YAML file replacing the built-in network presets"},
		&cli.StringFlag{Name: flagPrivateKey, EnvVars: []string{"PRIV_KEY"}, Value: devnetPrivateKey, Usage: "hex private key of the signer"},
		&cli.StringFlag{Name: flagLogLevel, EnvVars: []string{"LOG_LEVEL"}, Value: "info", Usage: "debug, info, warn or error"},
		&cli.BoolFlag{Name: flagLogColor, EnvVars: []string{"LOG_COLOR"}, Value: true, Usage: "colorize log output"},
		&cli.StringFlag{Name: flagArtifacts, EnvVars: []string{"ARTIFACTS_DIR"}, Value: "artifacts", Usage: "directory of compiled contract artifacts"},
		&cli.DurationFlag{Name: flagPollInterval, EnvVars: []string{"POLL_INTERVAL"}, Value: messenger.DefaultPollInterval, Usage: "interval between status polls"},
		&cli.DurationFlag{Name: flagTimeout, EnvVars: []string{"TIMEOUT"}, Usage: "give up waiting for a status after this long (0 waits forever)"},

		str("l1-rpc", "L1_RPC", "L1 RPC endpoint", "Chain"),
		str("l2-rpc", "L2_RPC", "L2 RPC endpoint", "Chain"),
		&cli.Uint64Flag{Name: "l1-chainid", EnvVars: []string{"L1_CHAINID"}, Usage: "L1 chain id", Category: "Chain"},
		&cli.Uint64Flag{Name: "l2-chainid", EnvVars: []string{"L2_CHAINID"}, Usage: "L2 chain id", Category: "Chain"},

		str("l1-bridge", "L1_BRIDGE", "L1StandardBridge address", "Contracts"),
		str("l2-bridge", "L2_BRIDGE", "L2StandardBridge address", "Contracts"),
		str("l1-cdm", "L1_CDM", "L1CrossDomainMessenger address", "Contracts"),
		str("l2-cdm", "L2_CDM", "L2CrossDomainMessenger address", "Contracts"),
		str("l1-mnt", "L1_MNT", "MNT token on L1", "Contracts"),
		str("l2-mnt", "L2_MNT", "MNT token on L2", "Contracts"),
		str("l1-portal", "L1_PORTAL", "OptimismPortal address", "Contracts"),
		str("l1-output-oracle", "L1_OUTPUT_ORACLE", "L2OutputOracle address", "Contracts"),
		str("l1-erc721-bridge", "L1_ERC721_BRIDGE", "L1ERC721Bridge address", "Contracts"),
		str("l2-erc721-bridge", "L2_ERC721_BRIDGE", "L2ERC721Bridge address", "Contracts"),
		str("l2-optimism-mint-factory", "L2_OPTIMISM_MINT_FACTORY", "OptimismMintableERC20Factory address", "Contracts"),
		str("l2-erc721-mint-factory", "L2_ERC721_MINT_FACTORY", "OptimismMintableERC721Factory address", "Contracts"),

		str("database-uri", "DATABASE_URI", "MongoDB connection string", "Service"),
		&cli.StringFlag{Name: "database-name", EnvVars: []string{"DATABASE_NAME"}, Value: "mantle_bridge", Usage: "MongoDB database", Category: "Service"},
		&cli.StringFlag{Name: "api-port", EnvVars: []string{"API_PORT"}, Value: "8080", Usage: "port of the HTTP API", Category: "Service"},
	}
}

// loadConfig merges the flags with the selected network preset.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := &config.Config{
		Network:             c.String(flagNetwork),
		PrivateKey:          c.String(flagPrivateKey),
		L1RPC:               c.String("l1-rpc"),
		L2RPC:               c.String("l2-rpc"),
		L1ChainID:           c.Uint64("l1-chainid"),
		L2ChainID:           c.Uint64("l2-chainid"),
		L1Bridge:            c.String("l1-bridge"),
		L2Bridge:            c.String("l2-bridge"),
		L1CDM:               c.String("l1-cdm"),
		L2CDM:               c.String("l2-cdm"),
		L1MNT:               c.String("l1-mnt"),
		L2MNT:               c.String("l2-mnt"),
		L1Portal:            c.String("l1-portal"),
		L1OutputOracle:      c.String("l1-output-oracle"),
		L1ERC721Bridge:      c.String("l1-erc721-bridge"),
		L2ERC721Bridge:      c.String("l2-erc721-bridge"),
		L2MintFactory:       c.String("l2-optimism-mint-factory"),
		L2ERC721MintFactory: c.String("l2-erc721-mint-factory"),
		ArtifactsDir:        c.String(flagArtifacts),
		PollInterval:        c.Duration(flagPollInterval),
		Timeout:             c.Duration(flagTimeout),
		DatabaseURI:         c.String("database-uri"),
		DatabaseName:        c.String("database-name"),
		APIPort:             c.String("api-port"),
	}

	networks, err := config.LoadNetworks(c.String(flagNetworksFile))
	if err != nil {
		return nil, err
	}
	network, err := networks.Get(cfg.Network)
	if err != nil {
		return nil, err
	}
	cfg.ApplyNetwork(network)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup connects to both chains and builds the demo environment. The
// returned func closes the connections.
func setup(c *cli.Context, m *metrics.Metrics) (*config.Config, *scenario.Env, func(), error) {
	logger := slog.Default()

	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, nil, err
	}

	ethOpts, err := cfg.EthereumOpts(logger.With("component", "ethereum"))
	if err != nil {
		return nil, nil, nil, err
	}
	mantleOpts, err := cfg.MantleOpts(logger.With("component", "mantle"))
	if err != nil {
		return nil, nil, nil, err
	}

	signer, err := chain.NewSigner(cfg.PrivateKey)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid private key (--private-key / PRIV_KEY): %w", err)
	}

	l1, err := ethereum.NewClient(ethOpts)
	if err != nil {
		return nil, nil, nil, err
	}
	l2, err := mantle.NewClient(mantleOpts)
	if err != nil {
		l1.Close()
		return nil, nil, nil, err
	}
	closeAll := func() {
		l1.Close()
		l2.Close()
	}

	if err := l1.ResolveWithdrawalContracts(c.Context); err != nil {
		logger.Warn("Withdrawal contracts not resolved, withdrawals need --l1-portal and --l1-output-oracle", "error", err)
	}

	msgr, err := messenger.New(messenger.Opts{
		L1:           l1,
		L2:           l2,
		Signer:       signer,
		PollInterval: cfg.PollInterval,
		Metrics:      m,
		Logger:       logger,
	})
	if err != nil {
		closeAll()
		return nil, nil, nil, err
	}

	env := &scenario.Env{
		L1:        l1,
		L2:        l2,
		Messenger: msgr,
		Signer:    signer,
		Artifacts: artifacts.Store{Dir: cfg.ArtifactsDir},
		Wait:      messenger.WaitOpts{PollInterval: cfg.PollInterval, Timeout: cfg.Timeout},
		Logger:    logger.With("component", "scenario"),
		Out:       os.Stdout,
	}
	return cfg, env, closeAll, nil
}

// run wraps a demo so it gets a connected environment.
func run(fn func(c *cli.Context, env *scenario.Env) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		_, env, closeAll, err := setup(c, nil)
		if err != nil {
			return err
		}
		defer closeAll()
		return fn(c, env)
	}
}
