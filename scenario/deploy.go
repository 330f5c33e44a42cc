package scenario

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/mantlenetworkio/mantle-tutorial-go/chain"
)

type DeployOpts struct {
	// Artifact defaults to Greeter.
	Artifact string
	// Chain is "l1" or "l2" (default).
	Chain string
	// Args are the constructor arguments, converted by the ABI input types.
	Args []string
}

// RunDeploy deploys a single artifact, like the hardhat starter kit does.
func RunDeploy(ctx context.Context, env *Env, opts DeployOpts) error {
	if opts.Artifact == "" {
		opts.Artifact = "Greeter"
	}

	var c *chain.Client
	switch strings.ToLower(opts.Chain) {
	case "", "l2":
		c = env.L2.Client
	case "l1":
		c = env.L1.Client
	default:
		return fmt.Errorf("unknown chain %q, use l1 or l2", opts.Chain)
	}

	artifact, err := env.Artifacts.Load(opts.Artifact)
	if err != nil {
		return err
	}
	args, err := constructorArgs(artifact.ABI, opts.Args)
	if err != nil {
		return err
	}

	addr, receipt, err := c.Deploy(ctx, env.Signer, artifact.ABI, artifact.Bytecode, chain.TxOpts{}, args...)
	if err != nil {
		return fmt.Errorf("failed to deploy %s: %w", opts.Artifact, err)
	}
	env.printf("%s %s\n", opts.Artifact, addr.Hex())
	env.printf("deployed in %s on chain %s\n", receipt.TxHash.Hex(), c.ChainID())
	env.printf("run: npx hardhat verify --network <network> %s to verify.\n", addr.Hex())
	return nil
}

// constructorArgs converts string arguments to the Go types the ABI packer expects.
func constructorArgs(contract abi.ABI, raw []string) ([]interface{}, error) {
	inputs := contract.Constructor.Inputs
	if len(raw) != len(inputs) {
		return nil, fmt.Errorf("constructor takes %d arguments, got %d", len(inputs), len(raw))
	}

	args := make([]interface{}, len(raw))
	for i, input := range inputs {
		v, err := convertArg(input.Type, raw[i])
		if err != nil {
			return nil, fmt.Errorf("argument %s: %w", input.Name, err)
		}
		args[i] = v
	}
	return args, nil
}

func convertArg(t abi.Type, s string) (interface{}, error) {
	switch t.T {
	case abi.StringTy:
		return s, nil
	case abi.AddressTy:
		if !common.IsHexAddress(s) {
			return nil, fmt.Errorf("invalid address %q", s)
		}
		return common.HexToAddress(s), nil
	case abi.BoolTy:
		return strconv.ParseBool(s)
	case abi.UintTy, abi.IntTy:
		n, ok := new(big.Int).SetString(s, 0)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", s)
		}
		if t.Size > 64 {
			return n, nil
		}
		return sizedInt(t, n)
	}
	return nil, fmt.Errorf("unsupported constructor argument type %s", t)
}

// sizedInt returns the fixed size Go integer the packer wants for small int types.
func sizedInt(t abi.Type, n *big.Int) (interface{}, error) {
	if t.T == abi.UintTy {
		if n.Sign() < 0 || n.BitLen() > t.Size {
			return nil, fmt.Errorf("%s out of range for %s", n, t)
		}
		v := n.Uint64()
		switch t.Size {
		case 8:
			return uint8(v), nil
		case 16:
			return uint16(v), nil
		case 32:
			return uint32(v), nil
		case 64:
			return v, nil
		}
	} else {
		if !n.IsInt64() {
			return nil, fmt.Errorf("%s out of range for %s", n, t)
		}
		v := n.Int64()
		switch t.Size {
		case 8:
			return int8(v), nil
		case 16:
			return int16(v), nil
		case 32:
			return int32(v), nil
		case 64:
			return v, nil
		}
	}
	return nil, fmt.Errorf("unsupported integer type %s", t)
}
