package messenger

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mantlenetworkio/mantle-tutorial-go/types"
)

type WaitOpts struct {
	// PollInterval defaults to the messenger's poll interval.
	PollInterval time.Duration
	// Timeout of zero waits until the context is done.
	Timeout time.Duration
}

// WaitForMessageStatus polls the first message sent by txHash until it
// reaches target. For withdrawals any later status also counts as reached.
func (m *CrossChainMessenger) WaitForMessageStatus(ctx context.Context, txHash common.Hash, target types.MessageStatus, opts WaitOpts) (types.MessageStatus, error) {
	msg, err := m.ToCrossChainMessage(ctx, txHash, 0)
	if err != nil {
		return 0, err
	}
	if opts.PollInterval == 0 {
		opts.PollInterval = m.Opts.PollInterval
	}

	logger := m.logger.With("tx", txHash.Hex(), "direction", msg.Direction.String(), "target", target.String())
	fetch := func(ctx context.Context) (types.MessageStatus, error) {
		return m.MessageStatus(ctx, msg)
	}
	onChange := func(status types.MessageStatus) {
		m.metrics.RecordStatusChange(status)
		logger.Info("Message status", "status", status.String())
	}
	return waitFor(ctx, msg.Direction, target, opts, fetch, onChange)
}

type statusFunc func(ctx context.Context) (types.MessageStatus, error)

func waitFor(ctx context.Context, direction types.MessageDirection, target types.MessageStatus, opts WaitOpts, fetch statusFunc, onChange func(types.MessageStatus)) (types.MessageStatus, error) {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}

	var timeout <-chan time.Time
	if opts.Timeout > 0 {
		timer := time.NewTimer(opts.Timeout)
		defer timer.Stop()
		timeout = timer.C
	}

	last, seen := types.MessageStatus(0), false
	for {
		status, err := fetch(ctx)
		if err != nil {
			return last, err
		}

		// withdrawals only move forward, a lagging node must not make them regress
		if seen && direction == types.L2ToL1 && status < last {
			status = last
		}
		if !seen || status != last {
			onChange(status)
			last, seen = status, true
		}

		done, err := reached(direction, target, status)
		if err != nil || done {
			return status, err
		}

		select {
		case <-ctx.Done():
			return status, ctx.Err()
		case <-timeout:
			return status, fmt.Errorf("%w: wanted %s, last saw %s after %s", ErrWaitTimeout, target, status, opts.Timeout)
		case <-time.After(opts.PollInterval):
		}
	}
}

func reached(direction types.MessageDirection, target, status types.MessageStatus) (bool, error) {
	if direction == types.L2ToL1 {
		return status >= target, nil
	}

	switch {
	case status == target:
		return true, nil
	case target == types.UnconfirmedL1ToL2Message && status > target:
		return true, nil
	case target == types.FailedL1ToL2Message && status == types.Relayed,
		target == types.Relayed && status == types.FailedL1ToL2Message:
		return false, fmt.Errorf("%w: wanted %s, message is %s", ErrUnexpectedStatus, target, status)
	}
	return false, nil
}
