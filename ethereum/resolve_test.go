package ethereum

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/lmittmann/w3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantlenetworkio/mantle-tutorial-go/contracts"
)

var (
	l1CDM  = common.HexToAddress("0xc48078a734c2e22D43F54B47F7a8fB314Fa5A601")
	portal = common.HexToAddress("0x0000000000000000000000000000000000000a01")
	oracle = common.HexToAddress("0x0000000000000000000000000000000000000a02")
)

type getterCall struct {
	on common.Address
	fn *w3.Func
}

func fakeGetter(calls *[]getterCall, results map[*w3.Func]common.Address) addressGetter {
	return func(_ context.Context, on common.Address, fn *w3.Func) (common.Address, error) {
		*calls = append(*calls, getterCall{on: on, fn: fn})
		addr, ok := results[fn]
		if !ok {
			return common.Address{}, errors.New("execution reverted")
		}
		return addr, nil
	}
}

func TestResolveWithdrawalContracts(t *testing.T) {
	results := map[*w3.Func]common.Address{
		contracts.MessengerPortal: portal,
		contracts.PortalL2Oracle:  oracle,
	}

	t.Run("from messenger", func(t *testing.T) {
		var calls []getterCall
		opts := &ClientOpts{L1CrossDomainMessengerAddress: l1CDM, Logger: slog.Default()}
		require.NoError(t, resolveWithdrawalContracts(context.Background(), opts, fakeGetter(&calls, results)))

		assert.Equal(t, portal, opts.OptimismPortalAddress)
		assert.Equal(t, oracle, opts.L2OutputOracleAddress)
		require.Len(t, calls, 2)
		assert.Equal(t, l1CDM, calls[0].on)
		assert.Equal(t, portal, calls[1].on)
	})

	t.Run("configured wins", func(t *testing.T) {
		var calls []getterCall
		configured := common.HexToAddress("0x0000000000000000000000000000000000000b01")
		opts := &ClientOpts{L1CrossDomainMessengerAddress: l1CDM, OptimismPortalAddress: configured, Logger: slog.Default()}
		require.NoError(t, resolveWithdrawalContracts(context.Background(), opts, fakeGetter(&calls, results)))

		assert.Equal(t, configured, opts.OptimismPortalAddress)
		assert.Equal(t, oracle, opts.L2OutputOracleAddress)
		require.Len(t, calls, 1)
		assert.Equal(t, configured, calls[0].on)
	})

	t.Run("nothing to start from", func(t *testing.T) {
		var calls []getterCall
		opts := &ClientOpts{Logger: slog.Default()}
		require.NoError(t, resolveWithdrawalContracts(context.Background(), opts, fakeGetter(&calls, results)))
		assert.Empty(t, calls)
		assert.Zero(t, opts.OptimismPortalAddress)
	})

	t.Run("lookup fails", func(t *testing.T) {
		var calls []getterCall
		opts := &ClientOpts{L1CrossDomainMessengerAddress: l1CDM, Logger: slog.Default()}
		err := resolveWithdrawalContracts(context.Background(), opts, fakeGetter(&calls, nil))
		require.ErrorContains(t, err, "OptimismPortal")
		assert.Zero(t, opts.OptimismPortalAddress)
	})
}
