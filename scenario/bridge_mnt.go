package scenario

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mantlenetworkio/mantle-tutorial-go/chain"
	"github.com/mantlenetworkio/mantle-tutorial-go/contracts"
	"github.com/mantlenetworkio/mantle-tutorial-go/messenger"
)

type BridgeMNTOpts struct {
	DepositAmount  *big.Int
	WithdrawAmount *big.Int
}

// RunBridgeMNT deposits L1 MNT, which arrives as the native token on Mantle,
// and withdraws part of it.
func RunBridgeMNT(ctx context.Context, env *Env, opts BridgeMNTOpts) error {
	if err := env.checkWithdrawalContracts(); err != nil {
		return err
	}
	l1MNT := env.L1.Opts.L1MNTAddress
	if err := chain.CheckAddress(l1MNT, "L1 MNT", "--l1-mnt / L1_MNT"); err != nil {
		return err
	}
	deposit, withdraw := opts.DepositAmount, opts.WithdrawAmount
	if deposit == nil {
		deposit = tokens(1)
	}
	if withdraw == nil {
		withdraw = new(big.Int).Div(ether, big.NewInt(10))
	}

	report := func() error {
		l1, err := env.L1.ERC20Balance(ctx, l1MNT, env.Signer.Address())
		if err != nil {
			return err
		}
		l2, err := env.L2.BalanceAt(ctx, env.Signer.Address())
		if err != nil {
			return err
		}
		env.printf("Token on L1:%s     Token on L2:%s\n", chain.FormatUnits(l1, 18), chain.FormatUnits(l2, 18))
		return nil
	}

	env.banner("Deposit MNT")
	if err := report(); err != nil {
		return err
	}
	sw := env.stopwatch()

	if err := approve(ctx, env, l1MNT, contracts.LegacyMNTAddr, deposit); err != nil {
		return err
	}
	sw.lap()

	tx, err := env.Messenger.DepositMNT(ctx, deposit, messenger.BridgeOpts{})
	if err != nil {
		return err
	}
	if err := env.depositFlow(ctx, tx, sw); err != nil {
		return err
	}
	if err := report(); err != nil {
		return err
	}
	sw.done("depositMNT")

	env.banner("Withdraw MNT")
	sw = env.stopwatch()
	if err := report(); err != nil {
		return err
	}
	tx, err = env.Messenger.WithdrawMNT(ctx, withdraw, messenger.BridgeOpts{})
	if err != nil {
		return err
	}
	if err := env.withdrawalFlow(ctx, tx, sw, messenger.BridgeOpts{}); err != nil {
		return err
	}
	if err := report(); err != nil {
		return err
	}
	sw.done("withdrawMNT")
	return nil
}

// approve lets the L1 bridge take amount of l1Token and waits for it.
func approve(ctx context.Context, env *Env, l1Token, l2Token common.Address, amount *big.Int) error {
	tx, err := env.Messenger.ApproveERC20(ctx, l1Token, l2Token, amount)
	if err != nil {
		return fmt.Errorf("failed to approve: %w", err)
	}
	if _, err := env.L1.WaitMined(ctx, tx); err != nil {
		return err
	}
	allowance, err := env.L1.Allowance(ctx, l1Token, env.Signer.Address(), env.L1.Opts.L1StandardBridgeAddress)
	if err != nil {
		return err
	}
	env.printf("allowance: %s\n", allowance)
	return nil
}
