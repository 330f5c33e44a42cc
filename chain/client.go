package chain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/ethclient/gethclient"
	"github.com/ethereum/go-ethereum/rpc"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lmittmann/w3"
)

const tokenCacheSize = 256

// Client is the RPC handle shared by the L1 and L2 clients.
type Client struct {
	client  *ethclient.Client
	rpc     *rpc.Client
	w3      *w3.Client
	proof   *gethclient.Client
	chainId *big.Int
	tokens  *lru.Cache[common.Address, TokenInfo]
	logger  *slog.Logger
	Opts    *ClientOpts
}

type ClientOpts struct {
	Name     string
	Endpoint string
	// ChainID is the expected chain id. Zero skips the check.
	ChainID uint64
	// Contracts are checked for code on connect, keyed by a readable name.
	Contracts map[string]common.Address
	Logger    *slog.Logger
	Timeout   time.Duration
}

// NewClient connects to the JSON-RPC endpoint and verifies the chain id.
func NewClient(opts ClientOpts) (*Client, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	rpcClient, err := rpc.DialContext(ctx, opts.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", opts.Name, err)
	}
	client := ethclient.NewClient(rpcClient)

	chainId, err := client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chainId: %w", err)
	}
	if opts.ChainID != 0 && chainId.Uint64() != opts.ChainID {
		opts.Logger.Warn("chain id mismatch", "expected", opts.ChainID, "actual", chainId, "endpoint", opts.Endpoint)
	}

	tokens, err := lru.New[common.Address, TokenInfo](tokenCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create token cache: %w", err)
	}

	opts.Logger.Info("Connected to "+opts.Name, "chainId", chainId)

	c := &Client{
		client:  client,
		rpc:     rpcClient,
		w3:      w3.NewClient(rpcClient),
		proof:   gethclient.New(rpcClient),
		chainId: chainId,
		tokens:  tokens,
		logger:  opts.Logger,
		Opts:    &opts,
	}

	// Warn user if the contracts are not found at the given addresses.
	for name, addr := range opts.Contracts {
		if addr == (common.Address{}) {
			continue
		}
		if ok, _ := c.IsContract(ctx, addr); !ok {
			opts.Logger.Warn("contract not found for "+name+" at given Address", "address", addr.Hex(), "endpoint", opts.Endpoint)
		}
	}

	return c, nil
}

func (c *Client) ChainID() *big.Int {
	return new(big.Int).Set(c.chainId)
}

// Eth exposes the underlying ethclient for callers that need the full API.
func (c *Client) Eth() *ethclient.Client {
	return c.client
}

// RPC exposes the raw JSON-RPC client for methods ethclient does not model.
func (c *Client) RPC() *rpc.Client {
	return c.rpc
}

func (c *Client) Logger() *slog.Logger {
	return c.logger
}

func (c *Client) Close() {
	c.w3.Close()
}

func (c *Client) IsContract(ctx context.Context, addr common.Address) (bool, error) {
	code, err := c.client.CodeAt(ctx, addr, nil)
	if err != nil {
		return false, err
	}
	return len(code) > 0, nil
}

var ErrNotConfigured = errors.New("address not configured")

// NotConfiguredError is returned when an operation needs a contract address that was not set.
type NotConfiguredError struct {
	Contract string
	Flag     string
}

func (e NotConfiguredError) Error() string {
	return fmt.Sprintf("%s address not configured (%s)", e.Contract, e.Flag)
}

func (e NotConfiguredError) Unwrap() error {
	return ErrNotConfigured
}

// CheckAddress fails with a NotConfiguredError when addr is zero.
func CheckAddress(addr common.Address, contract, flag string) error {
	if addr == (common.Address{}) {
		return NotConfiguredError{Contract: contract, Flag: flag}
	}
	return nil
}
