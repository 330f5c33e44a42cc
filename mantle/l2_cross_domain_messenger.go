package mantle

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/lmittmann/w3/module/eth"

	"github.com/mantlenetworkio/mantle-tutorial-go/contracts"
)

// MessageReceipt reports whether the L2 messenger relayed a deposit message,
// and whether a relay attempt failed.
func (c *Client) MessageReceipt(ctx context.Context, msgHash common.Hash) (successful, failed bool, err error) {
	addr := c.Opts.L2CrossDomainMessengerAddress
	if err := c.Call(ctx,
		eth.CallFunc(addr, contracts.SuccessfulMessages, msgHash).Returns(&successful),
		eth.CallFunc(addr, contracts.FailedMessages, msgHash).Returns(&failed),
	); err != nil {
		return false, false, fmt.Errorf("failed to get message receipt: %w", err)
	}
	return successful, failed, nil
}
