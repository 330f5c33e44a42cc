package chain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/lmittmann/w3"
)

// FormatUnits renders an integer token amount with the given decimals.
func FormatUnits(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}
	return w3.FromWei(amount, decimals)
}

// ParseUnits parses a decimal string such as "0.1" into the integer amount
// for a token with the given decimals.
func ParseUnits(s string, decimals uint8) (*big.Int, error) {
	s = strings.TrimSpace(s)
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	if r.Sign() < 0 {
		return nil, fmt.Errorf("negative amount %q", s)
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	r.Mul(r, new(big.Rat).SetInt(scale))
	if !r.IsInt() {
		return nil, fmt.Errorf("amount %q has more than %d decimals", s, decimals)
	}
	return new(big.Int).Set(r.Num()), nil
}
