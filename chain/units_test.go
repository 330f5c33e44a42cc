package chain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnits(t *testing.T) {
	tests := []struct {
		in       string
		decimals uint8
		want     string
		wantErr  bool
	}{
		{in: "1", decimals: 18, want: "1000000000000000000"},
		{in: "0.1", decimals: 18, want: "100000000000000000"},
		{in: "0.001", decimals: 18, want: "1000000000000000"},
		{in: "2.5", decimals: 6, want: "2500000"},
		{in: "0.0000001", decimals: 6, wantErr: true},
		{in: "-1", decimals: 18, wantErr: true},
		{in: "abc", decimals: 18, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseUnits(tt.in, tt.decimals)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFormatUnits(t *testing.T) {
	v, _ := new(big.Int).SetString("1500000000000000000", 10)
	assert.Equal(t, "1.5", FormatUnits(v, 18))
	assert.Equal(t, "0", FormatUnits(nil, 18))
}

func TestBlockRange(t *testing.T) {
	assert.Equal(t, [][2]uint64{{0, 9}, {10, 19}, {20, 25}}, BlockRange(0, 25, 10))
	assert.Equal(t, [][2]uint64{{5, 5}}, BlockRange(5, 5, 10))
	assert.Equal(t, [][2]uint64{{0, 9}}, BlockRange(0, 9, 10))
}
