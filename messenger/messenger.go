package messenger

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mantlenetworkio/mantle-tutorial-go/chain"
	"github.com/mantlenetworkio/mantle-tutorial-go/ethereum"
	"github.com/mantlenetworkio/mantle-tutorial-go/mantle"
	"github.com/mantlenetworkio/mantle-tutorial-go/metrics"
)

const (
	DefaultPollInterval = 4 * time.Second
	DefaultMinGasLimit  = uint32(200000)
)

var (
	ErrMessageNotFound  = errors.New("cross domain message not found")
	ErrWrongDirection   = errors.New("message has the wrong direction")
	ErrUnexpectedStatus = errors.New("unexpected message status")
	ErrWaitTimeout      = errors.New("timed out waiting for message status")
)

type Opts struct {
	L1           *ethereum.Client
	L2           *mantle.Client
	Signer       *chain.Signer
	PollInterval time.Duration
	Metrics      *metrics.Metrics
	Logger       *slog.Logger
}

// CrossChainMessenger drives deposits and withdrawals between Ethereum and
// Mantle on behalf of a single signer.
type CrossChainMessenger struct {
	l1      *ethereum.Client
	l2      *mantle.Client
	signer  *chain.Signer
	metrics *metrics.Metrics
	logger  *slog.Logger
	Opts    *Opts
}

func New(opts Opts) (*CrossChainMessenger, error) {
	if opts.L1 == nil || opts.L2 == nil {
		return nil, fmt.Errorf("both L1 and L2 clients are required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.PollInterval == 0 {
		opts.PollInterval = DefaultPollInterval
	}

	return &CrossChainMessenger{
		l1:      opts.L1,
		l2:      opts.L2,
		signer:  opts.Signer,
		metrics: opts.Metrics,
		logger:  opts.Logger.With("component", "messenger"),
		Opts:    &opts,
	}, nil
}

func (m *CrossChainMessenger) L1() *ethereum.Client { return m.l1 }
func (m *CrossChainMessenger) L2() *mantle.Client   { return m.l2 }

func (m *CrossChainMessenger) Signer() (*chain.Signer, error) {
	if m.signer == nil {
		return nil, fmt.Errorf("no signer configured")
	}
	return m.signer, nil
}
