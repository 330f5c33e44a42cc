package ethereum

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantlenetworkio/mantle-tutorial-go/chain"
	"github.com/mantlenetworkio/mantle-tutorial-go/contracts"
)

func TestDepositCalls(t *testing.T) {
	amount := big.NewInt(1_000_000_000_000_000)

	t.Run("ETH goes as value", func(t *testing.T) {
		data, opts, err := depositETHCall(amount, 200000, chain.TxOpts{GasLimit: 300000})
		require.NoError(t, err)
		assert.Equal(t, amount, opts.Value)
		assert.Equal(t, uint64(300000), opts.GasLimit)

		var (
			minGas uint32
			extra  []byte
		)
		require.NoError(t, contracts.DepositETH.DecodeArgs(data, &minGas, &extra))
		assert.Equal(t, uint32(200000), minGas)
		assert.Empty(t, extra)
	})

	t.Run("MNT goes in calldata", func(t *testing.T) {
		data, opts, err := depositMNTCall(amount, 200000, chain.TxOpts{Value: big.NewInt(1)})
		require.NoError(t, err)
		assert.Nil(t, opts.Value)

		var (
			got    *big.Int
			minGas uint32
			extra  []byte
		)
		require.NoError(t, contracts.DepositMNT.DecodeArgs(data, &got, &minGas, &extra))
		assert.Equal(t, amount, got)
		assert.Equal(t, uint32(200000), minGas)
	})
}
