package scenario

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
)

type StandardTokenOpts struct {
	// L1Token skips deploying the L1 ERC20.
	L1Token common.Address
	Name    string
	Symbol  string
	// Out also writes the token list entry to this file.
	Out string
}

// TokenListEntry is the data.json entry of a bridged token.
type TokenListEntry struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
	Tokens   struct {
		L1 struct {
			Address common.Address `json:"address"`
		} `json:"L1"`
		L2 struct {
			Address common.Address `json:"address"`
		} `json:"L2"`
	} `json:"tokens"`
}

func newTokenListEntry(name, symbol string, decimals uint8, l1, l2 common.Address) *TokenListEntry {
	e := &TokenListEntry{Name: name, Symbol: symbol, Decimals: decimals}
	e.Tokens.L1.Address = l1
	e.Tokens.L2.Address = l2
	return e
}

// RunStandardToken creates the standard L2 representation of an L1 ERC20.
func RunStandardToken(ctx context.Context, env *Env, opts StandardTokenOpts) error {
	if opts.Name == "" {
		opts.Name, opts.Symbol = "L2TOKEN", "L2TOKEN"
	}

	l1Token := opts.L1Token
	if l1Token == (common.Address{}) {
		env.banner("Deploy L1 ERC20")
		env.println("Deploying L1 ERC20...")
		var err error
		l1Token, err = env.deploy(ctx, env.L1.Client, "ERC20", "L1 ERC20 Contract ExampleToken", "L1 ERC20 ExampleToken", "L1EPT")
		if err != nil {
			return err
		}
	}

	env.println("Creating instance of L2StandardERC20 on L2")
	l2Token, err := env.L2.CreateStandardL2Token(ctx, env.Signer, l1Token, opts.Name, opts.Symbol)
	if err != nil {
		return err
	}
	info, err := env.L2.TokenInfo(ctx, l2Token)
	if err != nil {
		return err
	}

	entry := newTokenListEntry(opts.Name, opts.Symbol, info.Decimals, l1Token, l2Token)
	out, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode token list entry: %w", err)
	}
	env.printf("%s\n", out)

	if opts.Out != "" {
		if err := os.WriteFile(opts.Out, append(out, '\n'), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", opts.Out, err)
		}
		env.Logger.Info("Wrote token list entry", "path", opts.Out)
	}
	return nil
}
