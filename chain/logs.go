package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
)

const defaultScanBatchSize = 10_000

// BlockRange splits [from, to] into windows of at most size blocks.
func BlockRange(from, to, size uint64) [][2]uint64 {
	if size == 0 {
		size = defaultScanBatchSize
	}
	var ranges [][2]uint64
	for start := from; start <= to; start += size {
		end := start + size - 1
		if end > to || end < start {
			end = to
		}
		ranges = append(ranges, [2]uint64{start, end})
		if end == to {
			break
		}
	}
	return ranges
}

// ScanLogs runs q over [from, to] in batches, since public endpoints cap the
// range a single eth_getLogs may cover. A zero to means the chain head.
func (c *Client) ScanLogs(ctx context.Context, q ethereum.FilterQuery, from, to, batch uint64) ([]types.Log, error) {
	if to == 0 {
		head, err := c.BlockNumber(ctx)
		if err != nil {
			return nil, err
		}
		to = head
	}
	if from > to {
		return nil, nil
	}

	var logs []types.Log
	for _, r := range BlockRange(from, to, batch) {
		q.FromBlock = new(big.Int).SetUint64(r[0])
		q.ToBlock = new(big.Int).SetUint64(r[1])

		batchLogs, err := c.FilterLogs(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("failed to scan blocks %d-%d: %w", r[0], r[1], err)
		}
		c.logger.Debug("scanned logs", "from", r[0], "to", r[1], "logs", len(batchLogs))
		logs = append(logs, batchLogs...)
	}
	return logs, nil
}
