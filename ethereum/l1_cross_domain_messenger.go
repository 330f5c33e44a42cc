package ethereum

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/lmittmann/w3/module/eth"

	"github.com/mantlenetworkio/mantle-tutorial-go/chain"
	"github.com/mantlenetworkio/mantle-tutorial-go/contracts"
)

// MessageReceipt reports whether the L1 messenger relayed a message successfully.
func (c *Client) MessageReceipt(ctx context.Context, msgHash common.Hash) (successful, failed bool, err error) {
	if err := chain.CheckAddress(c.Opts.L1CrossDomainMessengerAddress, "L1 cross domain messenger", "--l1-cdm / L1_CDM"); err != nil {
		return false, false, err
	}
	addr := c.Opts.L1CrossDomainMessengerAddress
	if err := c.Call(ctx,
		eth.CallFunc(addr, contracts.SuccessfulMessages, msgHash).Returns(&successful),
		eth.CallFunc(addr, contracts.FailedMessages, msgHash).Returns(&failed),
	); err != nil {
		return false, false, fmt.Errorf("failed to get message receipt: %w", err)
	}
	return successful, failed, nil
}
