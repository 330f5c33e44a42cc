package scenario

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mantlenetworkio/mantle-tutorial-go/chain"
	"github.com/mantlenetworkio/mantle-tutorial-go/contracts"
	"github.com/mantlenetworkio/mantle-tutorial-go/messenger"
)

type CustomTokenOpts struct {
	// L1Token must expose faucet(). Defaults to the L1 MNT of the network.
	L1Token common.Address
}

// RunCustomToken bridges an L1 token to a custom L2 ERC20 deployed from an artifact.
func RunCustomToken(ctx context.Context, env *Env, opts CustomTokenOpts) error {
	if err := env.checkWithdrawalContracts(); err != nil {
		return err
	}
	l1Token := opts.L1Token
	if l1Token == (common.Address{}) {
		l1Token = env.L1.Opts.L1MNTAddress
	}
	if err := chain.CheckAddress(l1Token, "L1 token", "--l1-token / L1_MNT"); err != nil {
		return err
	}

	env.println("Load the L1 Contract Instance...")
	env.printf(" L1 Contract ExampleToken address: %s\n", l1Token.Hex())

	faucet, err := contracts.Faucet.EncodeArgs()
	if err != nil {
		return fmt.Errorf("failed to encode faucet: %w", err)
	}
	if _, err := env.L1.SendAndWait(ctx, env.Signer, l1Token, faucet, chain.TxOpts{}); err != nil {
		return fmt.Errorf("failed to call faucet: %w", err)
	}
	balance, err := env.L1.ERC20Balance(ctx, l1Token, env.Signer.Address())
	if err != nil {
		return err
	}
	env.printf("mint to %s %s success\n", env.Signer.Address().Hex(), balance)

	env.println("Deploying L2 ERC20...")
	l2Token, err := env.deploy(ctx, env.L2.Client, "L2CustomERC20", "L2 ERC20 Contract BVM_L2DepositedERC20",
		env.L2.Opts.L2StandardBridgeAddress, l1Token)
	if err != nil {
		return err
	}
	env.println()

	report := func() error {
		l1, err := env.L1.ERC20Balance(ctx, l1Token, env.Signer.Address())
		if err != nil {
			return err
		}
		l2, err := env.L2.ERC20Balance(ctx, l2Token, env.Signer.Address())
		if err != nil {
			return err
		}
		env.printf("Token on L1:%s     Token on L2:%s\n", l1, l2)
		return nil
	}

	amount := tokens(1)

	env.banner("Deposit ERC20")
	if err := report(); err != nil {
		return err
	}
	sw := env.stopwatch()
	if err := approve(ctx, env, l1Token, l2Token, amount); err != nil {
		return err
	}
	sw.lap()
	// straight to depositERC20, the token may be configured as the network's MNT
	tx, err := env.L1.DepositERC20(ctx, env.Signer, l1Token, l2Token, amount, messenger.DefaultMinGasLimit, chain.TxOpts{})
	if err != nil {
		return err
	}
	if err := env.depositFlow(ctx, tx, sw); err != nil {
		return err
	}
	if err := report(); err != nil {
		return err
	}
	sw.done("depositERC20")

	env.banner("Withdraw ERC20")
	sw = env.stopwatch()
	if err := report(); err != nil {
		return err
	}
	tx, err = env.Messenger.WithdrawERC20(ctx, l1Token, l2Token, amount, messenger.BridgeOpts{})
	if err != nil {
		return err
	}
	if err := env.withdrawalFlow(ctx, tx, sw, messenger.BridgeOpts{}); err != nil {
		return err
	}
	if err := report(); err != nil {
		return err
	}
	sw.done("withdrawERC20")
	return nil
}
