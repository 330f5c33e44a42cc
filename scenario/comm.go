package scenario

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/mantlenetworkio/mantle-tutorial-go/chain"
	"github.com/mantlenetworkio/mantle-tutorial-go/contracts"
	"github.com/mantlenetworkio/mantle-tutorial-go/messenger"
)

type CommOpts struct {
	// L2ToL1 also sends a greeting from L2 back to L1.
	L2ToL1 bool
}

// RunComm sets greetings across chains through the cross domain messengers.
func RunComm(ctx context.Context, env *Env, opts CommOpts) error {
	if opts.L2ToL1 {
		if err := env.checkWithdrawalContracts(); err != nil {
			return err
		}
	}
	l1CDM := env.L1.Opts.L1CrossDomainMessengerAddress
	l2CDM := env.L2.Opts.L2CrossDomainMessengerAddress
	if err := chain.CheckAddress(l1CDM, "L1 cross domain messenger", "--l1-cdm / L1_CDM"); err != nil {
		return err
	}

	env.banner("Deploy Greeter")
	env.println("Deploying L1 Greeter...")
	l1Greeter, err := env.deploy(ctx, env.L1.Client, "Greeter", "L1 Greeter Contract", "L1 hello", l1CDM)
	if err != nil {
		return err
	}
	env.println("Deploying L2 Greeter...")
	l2Greeter, err := env.deploy(ctx, env.L2.Client, "Greeter", "L2 Greeter Contract", "L2 hello", l2CDM)
	if err != nil {
		return err
	}

	env.banner("Deploy Control Greeter")
	env.println("Deploying L1 ControlL2Greeter...")
	l1Control, err := env.deploy(ctx, env.L1.Client, "FromL1_ControlL2Greeter", "L1_ControlL2Greeter Contract", l1CDM, l2Greeter)
	if err != nil {
		return err
	}
	env.println("Deploying L2 ControlL1Greeter...")
	l2Control, err := env.deploy(ctx, env.L2.Client, "FromL2_ControlL1Greeter", "L2_ControlL1Greeter Contract", l2CDM, l1Greeter)
	if err != nil {
		return err
	}

	report := func() error {
		l1, err := env.L1.Greet(ctx, l1Greeter)
		if err != nil {
			return err
		}
		l2, err := env.L2.Greet(ctx, l2Greeter)
		if err != nil {
			return err
		}
		env.printf("L1 greet :%s     L2 greet :%s\n", l1, l2)
		return nil
	}

	env.banner("Send Msg L1 To L2")
	if err := report(); err != nil {
		return err
	}
	for _, greeting := range []string{"L1 say hi to L2", "L1 say hi to L2 again"} {
		sw := env.stopwatch()
		tx, err := sendGreeting(ctx, env.L1.Client, env.Signer, l1Control, greeting)
		if err != nil {
			return err
		}
		if err := env.depositFlow(ctx, tx, sw); err != nil {
			return err
		}
		env.println("After")
		if err := report(); err != nil {
			return err
		}
	}

	if !opts.L2ToL1 {
		return nil
	}

	env.banner("Send Msg L2 To L1")
	sw := env.stopwatch()
	tx, err := sendGreeting(ctx, env.L2.Client, env.Signer, l2Control, "L2 say hi to L1")
	if err != nil {
		return err
	}
	if err := env.withdrawalFlow(ctx, tx, sw, messenger.BridgeOpts{}); err != nil {
		return err
	}
	env.println("After")
	return report()
}

func sendGreeting(ctx context.Context, c *chain.Client, s *chain.Signer, control common.Address, greeting string) (*ethtypes.Transaction, error) {
	data, err := contracts.SetGreeting.EncodeArgs(greeting)
	if err != nil {
		return nil, fmt.Errorf("failed to encode setGreeting: %w", err)
	}
	return c.Transact(ctx, s, control, data, chain.TxOpts{})
}
