package mantle

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mantlenetworkio/mantle-tutorial-go/chain"
	"github.com/mantlenetworkio/mantle-tutorial-go/contracts"
)

// Client talks to the Mantle L2 and its predeploys.
type Client struct {
	*chain.Client
	Opts *ClientOpts
}

type ClientOpts struct {
	Endpoint                             string
	ChainID                              uint64
	L2StandardBridgeAddress              common.Address
	L2CrossDomainMessengerAddress        common.Address
	L2ToL1MessagePasserAddress           common.Address
	L2ERC721BridgeAddress                common.Address
	GasPriceOracleAddress                common.Address
	OptimismMintableERC20FactoryAddress  common.Address
	OptimismMintableERC721FactoryAddress common.Address
	Logger                               *slog.Logger
	Timeout                              time.Duration
}

// withDefaults fills unset addresses with the predeploys.
func (o ClientOpts) withDefaults() ClientOpts {
	set := func(addr *common.Address, def common.Address) {
		if *addr == (common.Address{}) {
			*addr = def
		}
	}
	set(&o.L2StandardBridgeAddress, contracts.L2StandardBridgeAddr)
	set(&o.L2CrossDomainMessengerAddress, contracts.L2CrossDomainMessengerAddr)
	set(&o.L2ToL1MessagePasserAddress, contracts.L2ToL1MessagePasserAddr)
	set(&o.L2ERC721BridgeAddress, contracts.L2ERC721BridgeAddr)
	set(&o.GasPriceOracleAddress, contracts.GasPriceOracleAddr)
	set(&o.OptimismMintableERC20FactoryAddress, contracts.OptimismMintableERC20FactoryAddr)
	set(&o.OptimismMintableERC721FactoryAddress, contracts.OptimismMintableERC721FactoryAddr)
	return o
}

// NewClient returns a new Mantle client over HTTP or WS.
func NewClient(opts ClientOpts) (*Client, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	opts = opts.withDefaults()

	client, err := chain.NewClient(chain.ClientOpts{
		Name:     "Mantle",
		Endpoint: opts.Endpoint,
		ChainID:  opts.ChainID,
		Contracts: map[string]common.Address{
			"L2StandardBridge":       opts.L2StandardBridgeAddress,
			"L2CrossDomainMessenger": opts.L2CrossDomainMessengerAddress,
			"L2ToL1MessagePasser":    opts.L2ToL1MessagePasserAddress,
			"GasPriceOracle":         opts.GasPriceOracleAddress,
		},
		Logger:  opts.Logger,
		Timeout: opts.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Mantle: %w", err)
	}

	return &Client{
		Client: client,
		Opts:   &opts,
	}, nil
}
