package ethereum

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/lmittmann/w3"
	"github.com/lmittmann/w3/module/eth"

	"github.com/mantlenetworkio/mantle-tutorial-go/contracts"
)

type addressGetter func(ctx context.Context, on common.Address, fn *w3.Func) (common.Address, error)

// ResolveWithdrawalContracts looks up the OptimismPortal through the L1
// messenger's PORTAL() and the L2OutputOracle through the portal's
// L2_ORACLE() when either one is not configured. Configured values win.
func (c *Client) ResolveWithdrawalContracts(ctx context.Context) error {
	return resolveWithdrawalContracts(ctx, c.Opts, func(ctx context.Context, on common.Address, fn *w3.Func) (common.Address, error) {
		var addr common.Address
		if err := c.Call(ctx, eth.CallFunc(on, fn).Returns(&addr)); err != nil {
			return common.Address{}, err
		}
		return addr, nil
	})
}

func resolveWithdrawalContracts(ctx context.Context, opts *ClientOpts, get addressGetter) error {
	zero := common.Address{}
	if opts.OptimismPortalAddress == zero && opts.L1CrossDomainMessengerAddress != zero {
		portal, err := get(ctx, opts.L1CrossDomainMessengerAddress, contracts.MessengerPortal)
		if err != nil {
			return fmt.Errorf("failed to get OptimismPortal from L1 messenger: %w", err)
		}
		opts.OptimismPortalAddress = portal
		opts.Logger.Debug("Resolved OptimismPortal", "address", portal.Hex())
	}
	if opts.L2OutputOracleAddress == zero && opts.OptimismPortalAddress != zero {
		oracle, err := get(ctx, opts.OptimismPortalAddress, contracts.PortalL2Oracle)
		if err != nil {
			return fmt.Errorf("failed to get L2OutputOracle from OptimismPortal: %w", err)
		}
		opts.L2OutputOracleAddress = oracle
		opts.Logger.Debug("Resolved L2OutputOracle", "address", oracle.Hex())
	}
	return nil
}
