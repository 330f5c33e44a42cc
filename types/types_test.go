package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMessageStatusOrder(t *testing.T) {
	ordered := []MessageStatus{StateRootNotPublished, ReadyToProve, InChallengePeriod, ReadyForRelay, Relayed}
	for i := 1; i < len(ordered); i++ {
		assert.Less(t, ordered[i-1], ordered[i])
	}
	assert.Less(t, UnconfirmedL1ToL2Message, FailedL1ToL2Message)
}

func TestParseMessageStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    MessageStatus
		wantErr bool
	}{
		{in: "RELAYED", want: Relayed},
		{in: "ready_to_prove", want: ReadyToProve},
		{in: " In_Challenge_Period ", want: InChallengePeriod},
		{in: "SENT", want: StateRootNotPublished},
		{in: "PENDING", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMessageStatus(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMessageStatusStringUnknown(t *testing.T) {
	assert.Equal(t, "MessageStatus(42)", MessageStatus(42).String())
}

func TestMessageStatusWireForm(t *testing.T) {
	type doc struct {
		Status MessageStatus `json:"status" bson:"status"`
	}

	raw, err := json.Marshal(doc{Status: ReadyForRelay})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"READY_FOR_RELAY"}`, string(raw))

	raw, err = bson.Marshal(doc{Status: InChallengePeriod})
	require.NoError(t, err)
	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	assert.Equal(t, "IN_CHALLENGE_PERIOD", m["status"])

	var back doc
	require.NoError(t, bson.Unmarshal(raw, &back))
	assert.Equal(t, InChallengePeriod, back.Status)
}

func TestTerminal(t *testing.T) {
	assert.True(t, Relayed.Terminal())
	assert.False(t, FailedL1ToL2Message.Terminal())
	assert.False(t, ReadyForRelay.Terminal())
}
