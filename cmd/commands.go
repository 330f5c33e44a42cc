package main

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"

	"github.com/mantlenetworkio/mantle-tutorial-go/chain"
	"github.com/mantlenetworkio/mantle-tutorial-go/config"
	"github.com/mantlenetworkio/mantle-tutorial-go/messenger"
	"github.com/mantlenetworkio/mantle-tutorial-go/scenario"
	"github.com/mantlenetworkio/mantle-tutorial-go/types"
)

func bridgeETHCommand() *cli.Command {
	return &cli.Command{
		Name:  "bridge-eth",
		Usage: "deposit ETH to Mantle and withdraw it back",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "amount", Value: "0.001", Usage: "amount of ETH"},
		},
		Action: run(func(c *cli.Context, env *scenario.Env) error {
			amount, err := chain.ParseUnits(c.String("amount"), 18)
			if err != nil {
				return err
			}
			return scenario.RunBridgeETH(c.Context, env, scenario.BridgeETHOpts{Amount: amount})
		}),
	}
}

func bridgeERC20Command() *cli.Command {
	return &cli.Command{
		Name:  "bridge-erc20",
		Usage: "deposit an ERC20 to Mantle and withdraw it back",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "l1-token", Usage: "existing L1 token, a test pair is deployed when unset"},
			&cli.StringFlag{Name: "l2-token", Usage: "L2 side of --l1-token"},
			&cli.Int64Flag{Name: "amount", Value: 1, Usage: "whole tokens to bridge"},
			&cli.StringFlag{Name: "l2-artifact", Usage: "deploy the L2 token from this artifact instead of the factory"},
		},
		Action: run(func(c *cli.Context, env *scenario.Env) error {
			l1Token, err := config.Address(c.String("l1-token"), "--l1-token")
			if err != nil {
				return err
			}
			l2Token, err := config.Address(c.String("l2-token"), "--l2-token")
			if err != nil {
				return err
			}
			return scenario.RunBridgeERC20(c.Context, env, scenario.BridgeERC20Opts{
				L1Token:    l1Token,
				L2Token:    l2Token,
				Amount:     big.NewInt(c.Int64("amount")),
				L2Artifact: c.String("l2-artifact"),
			})
		}),
	}
}

func bridgeMNTCommand() *cli.Command {
	return &cli.Command{
		Name:  "bridge-mnt",
		Usage: "deposit MNT to Mantle and withdraw part of it back",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "deposit", Value: "1", Usage: "MNT to deposit"},
			&cli.StringFlag{Name: "withdraw", Value: "0.1", Usage: "MNT to withdraw"},
		},
		Action: run(func(c *cli.Context, env *scenario.Env) error {
			deposit, err := chain.ParseUnits(c.String("deposit"), 18)
			if err != nil {
				return err
			}
			withdraw, err := chain.ParseUnits(c.String("withdraw"), 18)
			if err != nil {
				return err
			}
			return scenario.RunBridgeMNT(c.Context, env, scenario.BridgeMNTOpts{DepositAmount: deposit, WithdrawAmount: withdraw})
		}),
	}
}

func bridgeERC721Command() *cli.Command {
	return &cli.Command{
		Name:  "bridge-erc721",
		Usage: "mint a test NFT, deposit it to Mantle and withdraw it back",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "NFT collection name"},
			&cli.StringFlag{Name: "symbol", Usage: "NFT collection symbol"},
		},
		Action: run(func(c *cli.Context, env *scenario.Env) error {
			return scenario.RunBridgeERC721(c.Context, env, scenario.BridgeERC721Opts{Name: c.String("name"), Symbol: c.String("symbol")})
		}),
	}
}

func commCommand() *cli.Command {
	return &cli.Command{
		Name:  "comm",
		Usage: "set a Greeter's greeting across domains",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "l2-to-l1", Usage: "also send a message from L2 to L1"},
		},
		Action: run(func(c *cli.Context, env *scenario.Env) error {
			return scenario.RunComm(c.Context, env, scenario.CommOpts{L2ToL1: c.Bool("l2-to-l1")})
		}),
	}
}

func estimateGasCommand() *cli.Command {
	return &cli.Command{
		Name:  "estimate-gas",
		Usage: "compare estimated and real gas costs of an L2 transaction",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "legacy", Usage: "estimate --data sent to --to as a legacy transaction"},
			&cli.StringFlag{Name: "from", Usage: "sender of the legacy estimate, the signer by default"},
			&cli.StringFlag{Name: "to", Usage: "target of the legacy estimate"},
			&cli.StringFlag{Name: "data", Usage: "hex calldata of the legacy estimate"},
		},
		Action: run(func(c *cli.Context, env *scenario.Env) error {
			opts := scenario.EstimateGasOpts{Legacy: c.Bool("legacy")}
			if opts.Legacy {
				var err error
				if opts.From, err = config.Address(c.String("from"), "--from"); err != nil {
					return err
				}
				if opts.To, err = config.Address(c.String("to"), "--to"); err != nil {
					return err
				}
				if opts.To == (common.Address{}) {
					return fmt.Errorf("--legacy needs --to")
				}
				if c.String("data") != "" {
					if opts.Data, err = hexutil.Decode(c.String("data")); err != nil {
						return fmt.Errorf("invalid --data: %w", err)
					}
				}
			}
			return scenario.RunEstimateGas(c.Context, env, opts)
		}),
	}
}

func viewTxCommand() *cli.Command {
	return &cli.Command{
		Name:  "view-tx",
		Usage: "list the deposits and withdrawals of an address",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "address", Usage: "address to look up, the signer by default"},
			&cli.Uint64Flag{Name: "from-block", Usage: "first block to scan on both chains"},
			&cli.Uint64Flag{Name: "to-block", Usage: "last block to scan, the head by default"},
			&cli.Uint64Flag{Name: "batch", Value: 10000, Usage: "blocks per eth_getLogs request"},
			&cli.BoolFlag{Name: "erc721", Usage: "include ERC721 bridge transfers"},
		},
		Action: run(func(c *cli.Context, env *scenario.Env) error {
			addr, err := config.Address(c.String("address"), "--address")
			if err != nil {
				return err
			}
			return scenario.RunViewTx(c.Context, env, scenario.ViewTxOpts{
				Address: addr,
				Filter: messenger.FilterOpts{
					FromBlock:     c.Uint64("from-block"),
					ToBlock:       c.Uint64("to-block"),
					Batch:         c.Uint64("batch"),
					IncludeERC721: c.Bool("erc721"),
				},
			})
		}),
	}
}

func standardTokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "standard-token",
		Usage: "create the standard L2 token of an L1 ERC20",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "l1-token", Usage: "L1 token, a test ERC20 is deployed when unset"},
			&cli.StringFlag{Name: "name", Usage: "L2 token name"},
			&cli.StringFlag{Name: "symbol", Usage: "L2 token symbol"},
			&cli.StringFlag{Name: "out", Usage: "also write the token list entry to this file"},
		},
		Action: run(func(c *cli.Context, env *scenario.Env) error {
			l1Token, err := config.Address(c.String("l1-token"), "--l1-token")
			if err != nil {
				return err
			}
			return scenario.RunStandardToken(c.Context, env, scenario.StandardTokenOpts{
				L1Token: l1Token,
				Name:    c.String("name"),
				Symbol:  c.String("symbol"),
				Out:     c.String("out"),
			})
		}),
	}
}

func customTokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "custom-token",
		Usage: "bridge an L1 token to a custom L2 ERC20",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "l1-token", Usage: "L1 token with a faucet, the network's L1 MNT by default"},
		},
		Action: run(func(c *cli.Context, env *scenario.Env) error {
			l1Token, err := config.Address(c.String("l1-token"), "--l1-token")
			if err != nil {
				return err
			}
			return scenario.RunCustomToken(c.Context, env, scenario.CustomTokenOpts{L1Token: l1Token})
		}),
	}
}

func deployCommand() *cli.Command {
	return &cli.Command{
		Name:      "deploy",
		Usage:     "deploy a contract artifact",
		ArgsUsage: "[constructor args...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "artifact", Value: "Greeter", Usage: "artifact name"},
			&cli.StringFlag{Name: "chain", Value: "l2", Usage: "l1 or l2"},
		},
		Action: run(func(c *cli.Context, env *scenario.Env) error {
			return scenario.RunDeploy(c.Context, env, scenario.DeployOpts{
				Artifact: c.String("artifact"),
				Chain:    c.String("chain"),
				Args:     c.Args().Slice(),
			})
		}),
	}
}

func txHashArg(c *cli.Context) (common.Hash, error) {
	raw := c.Args().First()
	b, err := hexutil.Decode(raw)
	if err != nil || len(b) != common.HashLength {
		return common.Hash{}, fmt.Errorf("expected a transaction hash, got %q", raw)
	}
	return common.BytesToHash(b), nil
}

func messageStatusCommand() *cli.Command {
	return &cli.Command{
		Name:      "message-status",
		Usage:     "print the status of the message sent by a transaction",
		ArgsUsage: "<tx hash>",
		Action: run(func(c *cli.Context, env *scenario.Env) error {
			txHash, err := txHashArg(c)
			if err != nil {
				return err
			}
			status, err := env.Messenger.GetMessageStatus(c.Context, txHash)
			if err != nil {
				return err
			}
			fmt.Fprintln(env.Out, status)
			return nil
		}),
	}
}

func waitCommand() *cli.Command {
	return &cli.Command{
		Name:      "wait",
		Usage:     "wait until the message sent by a transaction reaches a status",
		ArgsUsage: "<tx hash>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "status", Value: types.Relayed.String(), Usage: "status to wait for"},
		},
		Action: run(func(c *cli.Context, env *scenario.Env) error {
			txHash, err := txHashArg(c)
			if err != nil {
				return err
			}
			target, err := types.ParseMessageStatus(c.String("status"))
			if err != nil {
				return err
			}
			status, err := env.Messenger.WaitForMessageStatus(c.Context, txHash, target, env.Wait)
			if err != nil {
				return err
			}
			fmt.Fprintln(env.Out, status)
			return nil
		}),
	}
}

func proveCommand() *cli.Command {
	return &cli.Command{
		Name:      "prove",
		Usage:     "prove a withdrawal that is READY_TO_PROVE",
		ArgsUsage: "<L2 tx hash>",
		Flags: []cli.Flag{
			&cli.Uint64Flag{Name: "gas-limit", Usage: "gas limit of the L1 transaction, estimated when unset"},
		},
		Action: run(func(c *cli.Context, env *scenario.Env) error {
			txHash, err := txHashArg(c)
			if err != nil {
				return err
			}
			receipt, err := env.Messenger.ProveAndWait(c.Context, txHash, messenger.BridgeOpts{GasLimit: c.Uint64("gas-limit")})
			if err != nil {
				return err
			}
			fmt.Fprintf(env.Out, "Proved in L1 transaction %s\n", receipt.TxHash.Hex())
			return nil
		}),
	}
}

func finalizeCommand() *cli.Command {
	return &cli.Command{
		Name:      "finalize",
		Usage:     "finalize a withdrawal that is READY_FOR_RELAY",
		ArgsUsage: "<L2 tx hash>",
		Flags: []cli.Flag{
			&cli.Uint64Flag{Name: "gas-limit", Usage: "gas limit of the L1 transaction, estimated when unset"},
		},
		Action: run(func(c *cli.Context, env *scenario.Env) error {
			txHash, err := txHashArg(c)
			if err != nil {
				return err
			}
			receipt, err := env.Messenger.FinalizeAndWait(c.Context, txHash, messenger.BridgeOpts{GasLimit: c.Uint64("gas-limit")})
			if err != nil {
				return err
			}
			fmt.Fprintf(env.Out, "Finalized in L1 transaction %s\n", receipt.TxHash.Hex())
			return nil
		}),
	}
}
