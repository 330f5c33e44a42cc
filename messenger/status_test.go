package messenger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mantlenetworkio/mantle-tutorial-go/types"
)

func TestDepositStatus(t *testing.T) {
	assert.Equal(t, types.Relayed, depositStatus(true, false))
	assert.Equal(t, types.Relayed, depositStatus(true, true))
	assert.Equal(t, types.FailedL1ToL2Message, depositStatus(false, true))
	assert.Equal(t, types.UnconfirmedL1ToL2Message, depositStatus(false, false))
}

func TestWithdrawalStatus(t *testing.T) {
	tests := []struct {
		name  string
		state withdrawalState
		want  types.MessageStatus
	}{
		{
			name:  "relayed wins over everything",
			state: withdrawalState{Relayed: true, WithdrawalBlock: 100},
			want:  types.Relayed,
		},
		{
			name:  "no output covers the block yet",
			state: withdrawalState{WithdrawalBlock: 100, LatestOutputBlock: 99},
			want:  types.StateRootNotPublished,
		},
		{
			name:  "output at the withdrawal block",
			state: withdrawalState{WithdrawalBlock: 100, LatestOutputBlock: 100},
			want:  types.ReadyToProve,
		},
		{
			name: "proven, period not over",
			state: withdrawalState{
				WithdrawalBlock: 100, LatestOutputBlock: 120,
				ProvenTimestamp: 1000, FinalizationPeriod: 12, L1Timestamp: 1011,
			},
			want: types.InChallengePeriod,
		},
		{
			name: "proven, period exactly over",
			state: withdrawalState{
				WithdrawalBlock: 100, LatestOutputBlock: 120,
				ProvenTimestamp: 1000, FinalizationPeriod: 12, L1Timestamp: 1012,
			},
			want: types.ReadyForRelay,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.status())
		})
	}
}
