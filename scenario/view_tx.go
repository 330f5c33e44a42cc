package scenario

import (
	"context"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/sync/errgroup"

	"github.com/mantlenetworkio/mantle-tutorial-go/chain"
	"github.com/mantlenetworkio/mantle-tutorial-go/messenger"
	"github.com/mantlenetworkio/mantle-tutorial-go/types"
)

const statusLookupConcurrency = 8

type ViewTxOpts struct {
	// Address defaults to the signer.
	Address common.Address
	Filter  messenger.FilterOpts
}

// txRow is one printed line of the history table.
type txRow struct {
	TxHash  common.Hash
	Amount  string
	Symbol  string
	Relayed bool
}

// RunViewTx lists the deposits and withdrawals of an address.
func RunViewTx(ctx context.Context, env *Env, opts ViewTxOpts) error {
	addr := opts.Address
	if addr == (common.Address{}) {
		addr = env.Signer.Address()
	}

	deposits, err := env.Messenger.GetDepositsByAddress(ctx, addr, opts.Filter)
	if err != nil {
		return fmt.Errorf("failed to get deposits: %w", err)
	}
	rows, err := describe(ctx, env, deposits)
	if err != nil {
		return err
	}
	env.printf("Deposits by address %s\n", addr.Hex())
	renderTxTable(env.Out, rows)

	withdrawals, err := env.Messenger.GetWithdrawalsByAddress(ctx, addr, opts.Filter)
	if err != nil {
		return fmt.Errorf("failed to get withdrawals: %w", err)
	}
	rows, err = describe(ctx, env, withdrawals)
	if err != nil {
		return err
	}
	env.printf("\nWithdrawals by address %s\n", addr.Hex())
	renderTxTable(env.Out, rows)
	return nil
}

// describe resolves symbols and statuses concurrently. Row order follows messages.
func describe(ctx context.Context, env *Env, messages []*types.TokenBridgeMessage) ([]txRow, error) {
	rows := make([]txRow, len(messages))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(statusLookupConcurrency)
	for i, msg := range messages {
		g.Go(func() error {
			symbol, decimals, err := tokenLabel(ctx, env, msg)
			if err != nil {
				return err
			}
			status, err := env.Messenger.GetMessageStatus(ctx, msg.TransactionHash)
			if err != nil {
				return fmt.Errorf("failed to get status of %s: %w", msg.TransactionHash.Hex(), err)
			}

			rows[i] = txRow{
				TxHash:  msg.TransactionHash,
				Amount:  formatAmount(msg, decimals),
				Symbol:  symbol,
				Relayed: status == types.Relayed,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

// tokenLabel names the L1 side of a transfer. Token metadata is cached by the client.
func tokenLabel(ctx context.Context, env *Env, msg *types.TokenBridgeMessage) (string, uint8, error) {
	switch msg.Kind {
	case types.TokenETH:
		return "ETH", 18, nil
	case types.TokenMNT:
		return "MNT", 18, nil
	case types.TokenERC721:
		return "ERC721", 0, nil
	}
	info, err := env.L1.TokenInfo(ctx, msg.L1Token)
	if err != nil {
		return "", 0, err
	}
	return info.Symbol, info.Decimals, nil
}

func formatAmount(msg *types.TokenBridgeMessage, decimals uint8) string {
	if msg.Kind == types.TokenERC721 {
		return "#" + msg.Amount.String()
	}
	return chain.FormatUnits(msg.Amount, decimals)
}

func renderTxTable(w io.Writer, rows []txRow) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Tx", "Amount", "Token", "Relayed"})
	for _, r := range rows {
		table.Append([]string{r.TxHash.Hex(), r.Amount, r.Symbol, fmt.Sprint(r.Relayed)})
	}
	table.Render()
}
