package messenger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantlenetworkio/mantle-tutorial-go/types"
)

// sequence returns the given statuses in order and repeats the last one.
func sequence(statuses ...types.MessageStatus) (statusFunc, *int) {
	calls := 0
	return func(context.Context) (types.MessageStatus, error) {
		i := calls
		if i >= len(statuses) {
			i = len(statuses) - 1
		}
		calls++
		return statuses[i], nil
	}, &calls
}

var fast = WaitOpts{PollInterval: time.Millisecond}

func TestWaitWithdrawalReachesTarget(t *testing.T) {
	fetch, calls := sequence(types.StateRootNotPublished, types.StateRootNotPublished, types.ReadyToProve)

	var seen []types.MessageStatus
	status, err := waitFor(context.Background(), types.L2ToL1, types.ReadyToProve, fast, fetch, func(s types.MessageStatus) {
		seen = append(seen, s)
	})
	require.NoError(t, err)
	assert.Equal(t, types.ReadyToProve, status)
	assert.Equal(t, 3, *calls)
	assert.Equal(t, []types.MessageStatus{types.StateRootNotPublished, types.ReadyToProve}, seen)
}

func TestWaitWithdrawalAcceptsLaterStatus(t *testing.T) {
	fetch, _ := sequence(types.Relayed)
	status, err := waitFor(context.Background(), types.L2ToL1, types.ReadyToProve, fast, fetch, func(types.MessageStatus) {})
	require.NoError(t, err)
	assert.Equal(t, types.Relayed, status)
}

func TestWaitWithdrawalNeverRegresses(t *testing.T) {
	fetch, _ := sequence(types.InChallengePeriod, types.ReadyToProve, types.ReadyForRelay)

	var seen []types.MessageStatus
	status, err := waitFor(context.Background(), types.L2ToL1, types.ReadyForRelay, fast, fetch, func(s types.MessageStatus) {
		seen = append(seen, s)
	})
	require.NoError(t, err)
	assert.Equal(t, types.ReadyForRelay, status)
	assert.Equal(t, []types.MessageStatus{types.InChallengePeriod, types.ReadyForRelay}, seen)
}

func TestWaitDeposit(t *testing.T) {
	tests := []struct {
		name     string
		target   types.MessageStatus
		statuses []types.MessageStatus
		want     types.MessageStatus
		wantErr  error
	}{
		{
			name:     "relayed",
			target:   types.Relayed,
			statuses: []types.MessageStatus{types.UnconfirmedL1ToL2Message, types.Relayed},
			want:     types.Relayed,
		},
		{
			name:     "unconfirmed is passed by relayed",
			target:   types.UnconfirmedL1ToL2Message,
			statuses: []types.MessageStatus{types.Relayed},
			want:     types.Relayed,
		},
		{
			name:     "failed when waiting for relay",
			target:   types.Relayed,
			statuses: []types.MessageStatus{types.UnconfirmedL1ToL2Message, types.FailedL1ToL2Message},
			want:     types.FailedL1ToL2Message,
			wantErr:  ErrUnexpectedStatus,
		},
		{
			name:     "relayed when waiting for failure",
			target:   types.FailedL1ToL2Message,
			statuses: []types.MessageStatus{types.Relayed},
			want:     types.Relayed,
			wantErr:  ErrUnexpectedStatus,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetch, _ := sequence(tt.statuses...)
			status, err := waitFor(context.Background(), types.L1ToL2, tt.target, fast, fetch, func(types.MessageStatus) {})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestWaitTimeout(t *testing.T) {
	fetch, _ := sequence(types.InChallengePeriod)
	opts := WaitOpts{PollInterval: time.Millisecond, Timeout: 20 * time.Millisecond}

	status, err := waitFor(context.Background(), types.L2ToL1, types.ReadyForRelay, opts, fetch, func(types.MessageStatus) {})
	require.ErrorIs(t, err, ErrWaitTimeout)
	assert.Equal(t, types.InChallengePeriod, status)
}

func TestWaitCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fetch := func(context.Context) (types.MessageStatus, error) {
		cancel()
		return types.ReadyToProve, nil
	}

	_, err := waitFor(ctx, types.L2ToL1, types.Relayed, WaitOpts{PollInterval: time.Hour}, fetch, func(types.MessageStatus) {})
	require.ErrorIs(t, err, context.Canceled)
}

func TestWaitFetchError(t *testing.T) {
	boom := errors.New("rpc down")
	fetch := func(context.Context) (types.MessageStatus, error) {
		return 0, boom
	}
	_, err := waitFor(context.Background(), types.L2ToL1, types.Relayed, fast, fetch, func(types.MessageStatus) {})
	require.ErrorIs(t, err, boom)
}
