package scenario

import (
	"context"
	"math/big"

	"github.com/mantlenetworkio/mantle-tutorial-go/chain"
	"github.com/mantlenetworkio/mantle-tutorial-go/contracts"
	"github.com/mantlenetworkio/mantle-tutorial-go/messenger"
)

type BridgeETHOpts struct {
	Amount *big.Int
}

// DefaultETHAmount is 0.001 ETH.
var DefaultETHAmount = big.NewInt(1e15)

// RunBridgeETH deposits ETH to Mantle and withdraws it again.
func RunBridgeETH(ctx context.Context, env *Env, opts BridgeETHOpts) error {
	if err := env.checkWithdrawalContracts(); err != nil {
		return err
	}
	amount := opts.Amount
	if amount == nil {
		amount = DefaultETHAmount
	}

	report := func() error {
		l1, err := env.L1.BalanceAt(ctx, env.Signer.Address())
		if err != nil {
			return err
		}
		// ETH on Mantle is the BVM_ETH token
		l2, err := env.L2.ERC20Balance(ctx, contracts.BVMETHAddr, env.Signer.Address())
		if err != nil {
			return err
		}
		env.printf("On L1:%s     On L2:%s\n", chain.FormatUnits(l1, 18), chain.FormatUnits(l2, 18))
		return nil
	}

	env.banner("Deposit ETH")
	if err := report(); err != nil {
		return err
	}
	sw := env.stopwatch()
	tx, err := env.Messenger.DepositETH(ctx, amount, messenger.BridgeOpts{})
	if err != nil {
		return err
	}
	if err := env.depositFlow(ctx, tx, sw); err != nil {
		return err
	}
	if err := report(); err != nil {
		return err
	}
	sw.done("depositETH")

	env.banner("Withdraw ETH")
	sw = env.stopwatch()
	if err := report(); err != nil {
		return err
	}
	tx, err = env.Messenger.WithdrawETH(ctx, amount, messenger.BridgeOpts{})
	if err != nil {
		return err
	}
	if err := env.withdrawalFlow(ctx, tx, sw, messenger.BridgeOpts{}); err != nil {
		return err
	}
	if err := report(); err != nil {
		return err
	}
	sw.done("withdrawETH")
	return nil
}
