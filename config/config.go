package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mantlenetworkio/mantle-tutorial-go/ethereum"
	"github.com/mantlenetworkio/mantle-tutorial-go/mantle"
)

// Config holds every setting of the tool after flags, env vars and the
// network preset have been merged.
type Config struct {
	Network    string
	PrivateKey string

	L1RPC     string
	L2RPC     string
	L1ChainID uint64
	L2ChainID uint64

	L1Bridge            string
	L2Bridge            string
	L1CDM               string
	L2CDM               string
	L1MNT               string
	L2MNT               string
	L1Portal            string
	L1OutputOracle      string
	L1ERC721Bridge      string
	L2ERC721Bridge      string
	L2MintFactory       string
	L2ERC721MintFactory string

	ArtifactsDir string
	PollInterval time.Duration
	Timeout      time.Duration

	DatabaseURI  string
	DatabaseName string
	APIPort      string
}

// ApplyNetwork fills every unset value from the preset.
func (c *Config) ApplyNetwork(n Network) {
	str := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	num := func(v *uint64, def uint64) {
		if *v == 0 {
			*v = def
		}
	}

	str(&c.L1RPC, n.L1.RPC)
	num(&c.L1ChainID, n.L1.ChainID)
	str(&c.L1Bridge, n.L1.StandardBridge)
	str(&c.L1CDM, n.L1.CrossDomainMessenger)
	str(&c.L1ERC721Bridge, n.L1.ERC721Bridge)
	str(&c.L1Portal, n.L1.OptimismPortal)
	str(&c.L1OutputOracle, n.L1.L2OutputOracle)
	str(&c.L1MNT, n.L1.MNT)

	str(&c.L2RPC, n.L2.RPC)
	num(&c.L2ChainID, n.L2.ChainID)
	str(&c.L2Bridge, n.L2.StandardBridge)
	str(&c.L2CDM, n.L2.CrossDomainMessenger)
	str(&c.L2ERC721Bridge, n.L2.ERC721Bridge)
	str(&c.L2MintFactory, n.L2.OptimismMintableERC20Factory)
	str(&c.L2ERC721MintFactory, n.L2.OptimismMintableERC721Factory)
	str(&c.L2MNT, n.L2.MNT)
}

// Validate checks what every command needs: both endpoints.
func (c *Config) Validate() error {
	if c.L1RPC == "" {
		return fmt.Errorf("L1 RPC endpoint not configured (--l1-rpc / L1_RPC)")
	}
	if c.L2RPC == "" {
		return fmt.Errorf("L2 RPC endpoint not configured (--l2-rpc / L2_RPC)")
	}
	return nil
}

func (c *Config) EthereumOpts(logger *slog.Logger) (ethereum.ClientOpts, error) {
	var (
		opts = ethereum.ClientOpts{
			Endpoint: c.L1RPC,
			ChainID:  c.L1ChainID,
			Logger:   logger,
		}
		p addressParser
	)
	opts.L1StandardBridgeAddress = p.parse(c.L1Bridge, "--l1-bridge / L1_BRIDGE")
	opts.L1CrossDomainMessengerAddress = p.parse(c.L1CDM, "--l1-cdm / L1_CDM")
	opts.L1ERC721BridgeAddress = p.parse(c.L1ERC721Bridge, "--l1-erc721-bridge / L1_ERC721_BRIDGE")
	opts.OptimismPortalAddress = p.parse(c.L1Portal, "--l1-portal / L1_PORTAL")
	opts.L2OutputOracleAddress = p.parse(c.L1OutputOracle, "--l1-output-oracle / L1_OUTPUT_ORACLE")
	opts.L1MNTAddress = p.parse(c.L1MNT, "--l1-mnt / L1_MNT")
	return opts, p.err
}

func (c *Config) MantleOpts(logger *slog.Logger) (mantle.ClientOpts, error) {
	var (
		opts = mantle.ClientOpts{
			Endpoint: c.L2RPC,
			ChainID:  c.L2ChainID,
			Logger:   logger,
		}
		p addressParser
	)
	opts.L2StandardBridgeAddress = p.parse(c.L2Bridge, "--l2-bridge / L2_BRIDGE")
	opts.L2CrossDomainMessengerAddress = p.parse(c.L2CDM, "--l2-cdm / L2_CDM")
	opts.L2ERC721BridgeAddress = p.parse(c.L2ERC721Bridge, "--l2-erc721-bridge / L2_ERC721_BRIDGE")
	opts.OptimismMintableERC20FactoryAddress = p.parse(c.L2MintFactory, "--l2-optimism-mint-factory / L2_OPTIMISM_MINT_FACTORY")
	opts.OptimismMintableERC721FactoryAddress = p.parse(c.L2ERC721MintFactory, "--l2-erc721-mint-factory / L2_ERC721_MINT_FACTORY")
	return opts, p.err
}

// Address parses an optional address setting. Empty yields the zero address.
func Address(value, flag string) (common.Address, error) {
	var p addressParser
	addr := p.parse(value, flag)
	return addr, p.err
}

// addressParser keeps the first error so a block of settings can be parsed in one go.
type addressParser struct {
	err error
}

func (p *addressParser) parse(value, flag string) common.Address {
	if value == "" || p.err != nil {
		return common.Address{}
	}
	if !common.IsHexAddress(value) {
		p.err = fmt.Errorf("invalid address %q (%s)", value, flag)
		return common.Address{}
	}
	return common.HexToAddress(value)
}
