package scenario

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"time"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/olekukonko/tablewriter"

	"github.com/mantlenetworkio/mantle-tutorial-go/chain"
	"github.com/mantlenetworkio/mantle-tutorial-go/contracts"
	"github.com/mantlenetworkio/mantle-tutorial-go/mantle"
)

type EstimateGasOpts struct {
	// Legacy estimates a plain call with eth_estimateGas times the gas price.
	Legacy bool
	From   common.Address
	To     common.Address
	Data   []byte
}

const (
	balanceRetries    = 10
	balanceRetryDelay = 100 * time.Millisecond
)

// RunEstimateGas compares the estimated cost of an L2 transaction with what
// it actually cost.
func RunEstimateGas(ctx context.Context, env *Env, opts EstimateGasOpts) error {
	if opts.Legacy {
		return estimateLegacy(ctx, env, opts)
	}

	env.banner("Deploy Greeter")
	env.println("Deploying L2 Greeter...")
	greeter, err := deployGreeter(ctx, env, "greeter init")
	if err != nil {
		return err
	}
	env.banner("Greeter Deployed")
	env.println()

	data, err := contracts.SetGreeting.EncodeArgs("Hello!")
	if err != nil {
		return fmt.Errorf("failed to encode setGreeting: %w", err)
	}

	env.println("About to get estimates")
	unsigned, err := env.L2.PopulateTransaction(ctx, env.Signer.Address(), &greeter, data, nil)
	if err != nil {
		return err
	}
	estimated, err := env.L2.EstimateGas(ctx, unsigned)
	if err != nil {
		return err
	}

	before, err := env.L2.BalanceAt(ctx, env.Signer.Address())
	if err != nil {
		return err
	}

	env.println("About to create the transaction")
	receipt, err := env.L2.SendAndWait(ctx, env.Signer, greeter, data, chain.TxOpts{})
	if err != nil {
		balance, _ := env.L2.BalanceAt(ctx, env.Signer.Address())
		env.printf("Coming from address: %s, balance: %s wei\n", env.Signer.Address().Hex(), balance)
		return fmt.Errorf("failed to send setGreeting: %w", err)
	}
	env.println("Transaction processed")

	spent, err := spentSince(ctx, before, balanceRetryDelay, func(ctx context.Context) (*big.Int, error) {
		return env.L2.BalanceAt(ctx, env.Signer.Address())
	})
	if err != nil {
		return err
	}

	mr, err := env.L2.MantleReceipt(ctx, receipt.TxHash)
	if err != nil {
		return err
	}
	actual := &mantle.GasEstimate{
		L1Gas:        mr.L1GasUsed,
		L1GasCost:    mr.L1Fee,
		L2Gas:        new(big.Int).SetUint64(mr.GasUsed),
		L2GasCost:    new(big.Int).Sub(spent, mr.L1Fee),
		TotalGasCost: spent,
	}

	renderGasTable(env.Out, estimated, actual)
	return nil
}

// spentSince polls balance until it moves away from before. The node may lag
// behind the receipt.
func spentSince(ctx context.Context, before *big.Int, delay time.Duration, balance func(context.Context) (*big.Int, error)) (*big.Int, error) {
	spent := new(big.Int)
	for i := 0; i < balanceRetries; i++ {
		after, err := balance(ctx)
		if err != nil {
			return nil, err
		}
		if spent.Sub(before, after).Sign() != 0 || i == balanceRetries-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	return spent, nil
}

func renderGasTable(w io.Writer, estimated, actual *mantle.GasEstimate) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"", "Estimate", "Real", "Difference"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	row := func(name string, est, act *big.Int) {
		table.Append([]string{name, est.String(), act.String(), new(big.Int).Sub(act, est).String()})
	}
	row("Total gas cost (wei)", estimated.TotalGasCost, actual.TotalGasCost)
	row("L1 gas cost (wei)", estimated.L1GasCost, actual.L1GasCost)
	row("L2 gas cost (wei)", estimated.L2GasCost, actual.L2GasCost)
	row("L1 gas", estimated.L1Gas, actual.L1Gas)
	row("L2 gas", estimated.L2Gas, actual.L2Gas)
	table.Render()
}

func estimateLegacy(ctx context.Context, env *Env, opts EstimateGasOpts) error {
	gasPrice, err := env.L2.Eth().SuggestGasPrice(ctx)
	if err != nil {
		return fmt.Errorf("failed to get gas price: %w", err)
	}
	env.printf("Gas Price: %s\n", gasPrice)

	from := opts.From
	if from == (common.Address{}) {
		from = env.Signer.Address()
	}
	gas, err := env.L2.Eth().EstimateGas(ctx, geth.CallMsg{From: from, To: &opts.To, GasPrice: gasPrice, Data: opts.Data})
	if err != nil {
		return fmt.Errorf("failed to estimate gas: %w", err)
	}
	env.printf("Estimated gas: %d\n", gas)

	total := new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(gas))
	env.printf("Estimated totalCost for legacy transaction: %s\n", chain.FormatUnits(total, 18))
	return nil
}

// deployGreeter deploys the L2 Greeter, passing the L2 messenger when the
// artifact's constructor takes one.
func deployGreeter(ctx context.Context, env *Env, greeting string) (common.Address, error) {
	artifact, err := env.Artifacts.Load("Greeter")
	if err != nil {
		return common.Address{}, err
	}
	args := []interface{}{greeting}
	if len(artifact.ABI.Constructor.Inputs) == 2 {
		args = append(args, env.L2.Opts.L2CrossDomainMessengerAddress)
	}
	addr, _, err := env.L2.Deploy(ctx, env.Signer, artifact.ABI, artifact.Bytecode, chain.TxOpts{}, args...)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to deploy Greeter: %w", err)
	}
	env.printf("L2 Greeter Contract Address: %s\n", addr.Hex())
	return addr, nil
}
