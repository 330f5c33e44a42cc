package ethereum

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mantlenetworkio/mantle-tutorial-go/chain"
)

// Client talks to L1 and knows where the Mantle contracts live there.
type Client struct {
	*chain.Client
	Opts *ClientOpts
}

type ClientOpts struct {
	Endpoint                      string
	ChainID                       uint64
	L1StandardBridgeAddress       common.Address
	L1CrossDomainMessengerAddress common.Address
	L1ERC721BridgeAddress         common.Address
	OptimismPortalAddress         common.Address
	L2OutputOracleAddress         common.Address
	L1MNTAddress                  common.Address
	Logger                        *slog.Logger
	Timeout                       time.Duration
}

// NewClient returns a new L1 client over HTTP or WS.
func NewClient(opts ClientOpts) (*Client, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	client, err := chain.NewClient(chain.ClientOpts{
		Name:     "Ethereum",
		Endpoint: opts.Endpoint,
		ChainID:  opts.ChainID,
		Contracts: map[string]common.Address{
			"L1StandardBridge":       opts.L1StandardBridgeAddress,
			"L1CrossDomainMessenger": opts.L1CrossDomainMessengerAddress,
			"L1ERC721Bridge":         opts.L1ERC721BridgeAddress,
			"OptimismPortal":         opts.OptimismPortalAddress,
			"L2OutputOracle":         opts.L2OutputOracleAddress,
			"L1MNT":                  opts.L1MNTAddress,
		},
		Logger:  opts.Logger,
		Timeout: opts.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Ethereum: %w", err)
	}

	return &Client{
		Client: client,
		Opts:   &opts,
	}, nil
}
