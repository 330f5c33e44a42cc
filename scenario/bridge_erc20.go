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

type BridgeERC20Opts struct {
	// L1Token and L2Token select an existing pair. When L1Token is unset a
	// test pair is deployed.
	L1Token common.Address
	L2Token common.Address
	// Amount in whole tokens is 1 by default.
	Amount *big.Int
	// L2Artifact deploys the L2 side from an artifact instead of the factory.
	L2Artifact string
}

func RunBridgeERC20(ctx context.Context, env *Env, opts BridgeERC20Opts) error {
	if err := env.checkWithdrawalContracts(); err != nil {
		return err
	}
	l1Token, l2Token := opts.L1Token, opts.L2Token
	if l1Token == (common.Address{}) {
		var err error
		if l1Token, l2Token, err = deployERC20Pair(ctx, env, opts.L2Artifact); err != nil {
			return err
		}
	} else if l2Token == (common.Address{}) {
		return fmt.Errorf("--l2-token is required together with --l1-token")
	}

	l1Info, err := env.L1.TokenInfo(ctx, l1Token)
	if err != nil {
		return err
	}
	l2Info, err := env.L2.TokenInfo(ctx, l2Token)
	if err != nil {
		return err
	}
	amount := opts.Amount
	if amount == nil {
		amount = new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(l1Info.Decimals)), nil)
	}

	report := func() error {
		l1, err := env.L1.ERC20Balance(ctx, l1Token, env.Signer.Address())
		if err != nil {
			return err
		}
		l2, err := env.L2.ERC20Balance(ctx, l2Token, env.Signer.Address())
		if err != nil {
			return err
		}
		env.printf("Token on L1:%s %s     Token on L2:%s %s\n",
			chain.FormatUnits(l1, l1Info.Decimals), l1Info.Symbol,
			chain.FormatUnits(l2, l2Info.Decimals), l2Info.Symbol)
		return nil
	}

	env.banner("Deposit ERC20")
	if err := report(); err != nil {
		return err
	}
	sw := env.stopwatch()
	if err := approve(ctx, env, l1Token, l2Token, amount); err != nil {
		return err
	}
	sw.lap()

	tx, err := env.Messenger.DepositERC20(ctx, l1Token, l2Token, amount, messenger.BridgeOpts{})
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

// deployERC20Pair deploys the L1 test token, mints 10 tokens to the signer
// and creates its L2 counterpart.
func deployERC20Pair(ctx context.Context, env *Env, l2Artifact string) (common.Address, common.Address, error) {
	env.banner("Deploy ERC20")
	env.println("Deploying L1 ERC20...")
	l1Token, err := env.deploy(ctx, env.L1.Client, "L1TestERC20", "L1 ERC20 Contract ExampleToken", "L1 ERC20 ExampleToken", "L1EPT")
	if err != nil {
		return common.Address{}, common.Address{}, err
	}

	data, err := contracts.Mint.EncodeArgs(env.Signer.Address(), tokens(10))
	if err != nil {
		return common.Address{}, common.Address{}, fmt.Errorf("failed to encode mint: %w", err)
	}
	if _, err := env.L1.SendAndWait(ctx, env.Signer, l1Token, data, chain.TxOpts{}); err != nil {
		return common.Address{}, common.Address{}, fmt.Errorf("failed to mint: %w", err)
	}
	balance, err := env.L1.ERC20Balance(ctx, l1Token, env.Signer.Address())
	if err != nil {
		return common.Address{}, common.Address{}, err
	}
	env.printf("mint to %s %s success\n", env.Signer.Address().Hex(), balance)

	env.println("Deploying L2 ERC20...")
	var l2Token common.Address
	if l2Artifact != "" {
		l2Token, err = env.deploy(ctx, env.L2.Client, l2Artifact, "L2 ERC20 Contract",
			env.L2.Opts.L2StandardBridgeAddress, l1Token, "L2 ERC20 ExampleToken", "L2EPT")
	} else {
		l2Token, err = env.L2.CreateOptimismMintableERC20(ctx, env.Signer, l1Token, "L2 ERC20 ExampleToken", "L2EPT")
		if err == nil {
			env.printf("L2 ERC20 Contract Address: %s\n", l2Token.Hex())
		}
	}
	if err != nil {
		return common.Address{}, common.Address{}, err
	}
	env.println()
	return l1Token, l2Token, nil
}
