package mantle

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantlenetworkio/mantle-tutorial-go/chain"
	"github.com/mantlenetworkio/mantle-tutorial-go/contracts"
)

func TestWithdrawCall(t *testing.T) {
	amount := big.NewInt(100_000_000_000_000_000)
	l2Token := common.HexToAddress("0x0000000000000000000000000000000000000e20")

	tests := []struct {
		name      string
		token     common.Address
		opts      chain.TxOpts
		wantValue *big.Int
	}{
		{name: "MNT sends native value", token: contracts.LegacyMNTAddr, wantValue: amount},
		{name: "ETH burns BVM_ETH", token: contracts.BVMETHAddr},
		{name: "ERC20", token: l2Token},
		{name: "ERC20 drops stray value", token: l2Token, opts: chain.TxOpts{Value: big.NewInt(5)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, opts, err := withdrawCall(tt.token, amount, 200000, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantValue, opts.Value)

			var (
				token  common.Address
				got    *big.Int
				minGas uint32
				extra  []byte
			)
			require.NoError(t, contracts.Withdraw.DecodeArgs(data, &token, &got, &minGas, &extra))
			assert.Equal(t, tt.token, token)
			assert.Equal(t, amount, got)
			assert.Equal(t, uint32(200000), minGas)
		})
	}
}
