package scenario

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/mantlenetworkio/mantle-tutorial-go/chain"
	"github.com/mantlenetworkio/mantle-tutorial-go/contracts"
	"github.com/mantlenetworkio/mantle-tutorial-go/messenger"
)

const (
	erc721DepositGasLimit  = 400000
	erc721FinalizeGasLimit = 4700000
)

type BridgeERC721Opts struct {
	Name   string
	Symbol string
}

func (o BridgeERC721Opts) withDefaults() BridgeERC721Opts {
	if o.Name == "" {
		o.Name = "TEST NFT FOR SDK0"
	}
	if o.Symbol == "" {
		o.Symbol = "TESTNFT0"
	}
	return o
}

// RunBridgeERC721 mints a test NFT on L1, bridges it to Mantle and back.
func RunBridgeERC721(ctx context.Context, env *Env, opts BridgeERC721Opts) error {
	if err := env.checkWithdrawalContracts(); err != nil {
		return err
	}
	opts = opts.withDefaults()
	if err := chain.CheckAddress(env.L1.Opts.L1ERC721BridgeAddress, "L1 ERC721 bridge", "--l1-erc721-bridge / L1_ERC721_BRIDGE"); err != nil {
		return err
	}

	env.banner("Deploy ERC721")
	env.println("Deploying L1 ERC721...")
	l1Token, err := env.deploy(ctx, env.L1.Client, "L1TestERC721", "L1 ERC721 Contract ExampleToken", opts.Name, opts.Symbol)
	if err != nil {
		return err
	}

	data, err := contracts.AwardItem.EncodeArgs(env.Signer.Address(), "")
	if err != nil {
		return fmt.Errorf("failed to encode awardItem: %w", err)
	}
	receipt, err := env.L1.SendAndWait(ctx, env.Signer, l1Token, data, chain.TxOpts{})
	if err != nil {
		return fmt.Errorf("failed to award NFT: %w", err)
	}
	tokenId, err := mintedTokenId(receipt, l1Token)
	if err != nil {
		return err
	}
	env.printf("award NFT %s %s success\n", env.Signer.Address().Hex(), tokenId)

	env.println("Deploying L2 ERC721...")
	l2Token, err := env.L2.CreateOptimismMintableERC721(ctx, env.Signer, l1Token, opts.Name, opts.Symbol)
	if err != nil {
		return err
	}
	env.printf("New ERC721 contract address: %s\n", l2Token.Hex())

	report := func() error {
		l1, err := env.L1.ERC721Balance(ctx, l1Token, env.Signer.Address())
		if err != nil {
			return err
		}
		l2, err := env.L2.ERC721Balance(ctx, l2Token, env.Signer.Address())
		if err != nil {
			return err
		}
		env.printf("Token on L1:%s    Token on L2:%s\n", l1, l2)
		return nil
	}

	env.banner("Deposit ERC721")
	if err := report(); err != nil {
		return err
	}
	sw := env.stopwatch()

	approved, err := env.Messenger.ERC721Approval(ctx, l1Token, l2Token)
	if err != nil {
		return err
	}
	if !approved {
		tx, err := env.Messenger.ApproveERC721(ctx, l1Token, l2Token)
		if err != nil {
			return err
		}
		if _, err := env.L1.WaitMined(ctx, tx); err != nil {
			return err
		}
		env.printf("approval given by tx %s\n", tx.Hash().Hex())
		sw.lap()
	}

	tx, err := env.Messenger.DepositERC721(ctx, l1Token, l2Token, tokenId, messenger.BridgeOpts{GasLimit: erc721DepositGasLimit})
	if err != nil {
		return err
	}
	if err := env.depositFlow(ctx, tx, sw); err != nil {
		return err
	}
	if err := report(); err != nil {
		return err
	}
	sw.done("depositERC721")

	env.banner("Withdraw ERC721")
	sw = env.stopwatch()
	if err := report(); err != nil {
		return err
	}
	tx, err = env.Messenger.WithdrawERC721(ctx, l1Token, l2Token, tokenId, messenger.BridgeOpts{})
	if err != nil {
		return err
	}
	if err := env.withdrawalFlow(ctx, tx, sw, messenger.BridgeOpts{GasLimit: erc721FinalizeGasLimit}); err != nil {
		return err
	}
	if err := report(); err != nil {
		return err
	}
	sw.done("withdrawERC721")
	return nil
}

// mintedTokenId reads the token id from the Transfer event of a mint.
func mintedTokenId(receipt *ethtypes.Receipt, token common.Address) (*big.Int, error) {
	for _, log := range receipt.Logs {
		if log.Address != token || len(log.Topics) != 4 || log.Topics[0] != contracts.ERC721Transfer.Topic0 {
			continue
		}
		var (
			from, to common.Address
			tokenId  *big.Int
		)
		if err := contracts.ERC721Transfer.DecodeArgs(log, &from, &to, &tokenId); err != nil {
			return nil, fmt.Errorf("failed to decode Transfer: %w", err)
		}
		return tokenId, nil
	}
	return nil, fmt.Errorf("no Transfer event in %s", receipt.TxHash.Hex())
}
