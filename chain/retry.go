package chain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/rpc"
)

const maxRetries = 5

// retryDelay is a var so tests can shorten it.
var retryDelay = 2 * time.Second

// errCodeReverted is the JSON-RPC error code nodes use for reverted calls.
const errCodeReverted = 3

// retry runs fn up to maxRetries times, sleeping between attempts. It gives
// up early if ctx is done or the call reverted.
func retry[T any](ctx context.Context, what string, fn func() (T, error)) (T, error) {
	var (
		zero    T
		lastErr error
	)

	for attempt := 0; attempt < maxRetries; attempt++ {
		if v, err := fn(); err == nil {
			return v, nil
		} else if permanent(err) {
			return zero, fmt.Errorf("failed to %s: %w", what, err)
		} else {
			lastErr = err
		}

		if attempt < maxRetries-1 {
			select {
			case <-ctx.Done():
				return zero, fmt.Errorf("failed to %s: %w", what, ctx.Err())
			case <-time.After(retryDelay):
			}
		}
	}

	return zero, fmt.Errorf("failed to %s after %d attempts: %w", what, maxRetries, lastErr)
}

// permanent reports errors that the same call returns every time: a revert,
// or empty return data from an address without code.
func permanent(err error) bool {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == errCodeReverted {
		return true
	}
	if errors.Is(err, vm.ErrExecutionReverted) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "execution reverted") || strings.Contains(msg, "attempting to unmarshal an empty string")
}
