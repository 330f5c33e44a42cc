// Package scenario holds the end-to-end bridge demos. Each demo prints its
// progress to Env.Out and returns the first error it hits.
package scenario

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/mantlenetworkio/mantle-tutorial-go/artifacts"
	"github.com/mantlenetworkio/mantle-tutorial-go/chain"
	"github.com/mantlenetworkio/mantle-tutorial-go/ethereum"
	"github.com/mantlenetworkio/mantle-tutorial-go/mantle"
	"github.com/mantlenetworkio/mantle-tutorial-go/messenger"
	"github.com/mantlenetworkio/mantle-tutorial-go/types"
)

// Env is everything a demo needs. It is built once by the CLI.
type Env struct {
	L1        *ethereum.Client
	L2        *mantle.Client
	Messenger *messenger.CrossChainMessenger
	Signer    *chain.Signer
	Artifacts artifacts.Store
	Wait      messenger.WaitOpts
	Logger    *slog.Logger
	Out       io.Writer
}

func (e *Env) printf(format string, args ...interface{}) {
	fmt.Fprintf(e.Out, format, args...)
}

func (e *Env) println(args ...interface{}) {
	fmt.Fprintln(e.Out, args...)
}

func (e *Env) banner(title string) {
	e.printf("#################### %s ####################\n", title)
}

type stopwatch struct {
	start time.Time
	out   io.Writer
	now   func() time.Time
}

func (e *Env) stopwatch() *stopwatch {
	return &stopwatch{start: time.Now(), out: e.Out, now: time.Now}
}

func (s *stopwatch) elapsed() string {
	return formatSeconds(s.now().Sub(s.start))
}

func (s *stopwatch) lap() {
	fmt.Fprintf(s.out, "Time so far %s seconds\n", s.elapsed())
}

func (s *stopwatch) done(what string) {
	fmt.Fprintf(s.out, "%s took %s seconds\n\n", what, s.elapsed())
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(float64(d.Milliseconds())/1000, 'f', -1, 64)
}

// checkWithdrawalContracts fails before a demo sends anything it could not
// withdraw again.
func (e *Env) checkWithdrawalContracts() error {
	if err := chain.CheckAddress(e.L1.Opts.OptimismPortalAddress, "OptimismPortal", "--l1-portal / L1_PORTAL"); err != nil {
		return err
	}
	return chain.CheckAddress(e.L1.Opts.L2OutputOracleAddress, "L2OutputOracle", "--l1-output-oracle / L1_OUTPUT_ORACLE")
}

func (e *Env) waitFor(ctx context.Context, txHash common.Hash, status types.MessageStatus) error {
	_, err := e.Messenger.WaitForMessageStatus(ctx, txHash, status, e.Wait)
	return err
}

// depositFlow waits for the L1 transaction and for its message to be relayed on L2.
func (e *Env) depositFlow(ctx context.Context, tx *ethtypes.Transaction, sw *stopwatch) error {
	e.printf("Deposit transaction hash (on L1): %s\n", tx.Hash().Hex())
	if _, err := e.L1.WaitMined(ctx, tx); err != nil {
		return err
	}

	e.println("Waiting for status to change to RELAYED")
	sw.lap()
	return e.waitFor(ctx, tx.Hash(), types.Relayed)
}

// withdrawalFlow takes an L2 withdrawal through proving and finalization.
func (e *Env) withdrawalFlow(ctx context.Context, tx *ethtypes.Transaction, sw *stopwatch, finalize messenger.BridgeOpts) error {
	txHash := tx.Hash()
	e.printf("Transaction hash (on L2): %s\n", txHash.Hex())
	if _, err := e.L2.WaitMined(ctx, tx); err != nil {
		return err
	}

	e.println("Waiting for status to be READY_TO_PROVE")
	sw.lap()
	if err := e.waitFor(ctx, txHash, types.ReadyToProve); err != nil {
		return err
	}
	sw.lap()
	receipt, err := e.Messenger.ProveAndWait(ctx, txHash, messenger.BridgeOpts{})
	if err != nil {
		return fmt.Errorf("failed to prove withdrawal: %w", err)
	}
	e.printf("Proved in L1 transaction %s\n", receipt.TxHash.Hex())

	e.println("Waiting for status to change to IN_CHALLENGE_PERIOD")
	sw.lap()
	if err := e.waitFor(ctx, txHash, types.InChallengePeriod); err != nil {
		return err
	}

	e.println("In the challenge period, waiting for status READY_FOR_RELAY")
	sw.lap()
	if err := e.waitFor(ctx, txHash, types.ReadyForRelay); err != nil {
		return err
	}

	e.println("Ready for relay, finalizing message now")
	sw.lap()
	receipt, err = e.Messenger.FinalizeAndWait(ctx, txHash, finalize)
	if err != nil {
		return fmt.Errorf("failed to finalize withdrawal: %w", err)
	}
	e.printf("Finalized in L1 transaction %s\n", receipt.TxHash.Hex())

	e.println("Waiting for status to change to RELAYED")
	sw.lap()
	return e.waitFor(ctx, txHash, types.Relayed)
}

// deploy deploys a named artifact and prints where it landed.
func (e *Env) deploy(ctx context.Context, c *chain.Client, name, label string, args ...interface{}) (common.Address, error) {
	artifact, err := e.Artifacts.Load(name)
	if err != nil {
		return common.Address{}, err
	}
	addr, _, err := c.Deploy(ctx, e.Signer, artifact.ABI, artifact.Bytecode, chain.TxOpts{}, args...)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to deploy %s: %w", name, err)
	}
	e.printf("%s Address: %s\n", label, addr.Hex())
	return addr, nil
}

var ether = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

func tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), ether)
}
