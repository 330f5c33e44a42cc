// Package artifacts loads compiled contracts in the hardhat artifact format.
package artifacts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Artifact is a compiled contract ready to be deployed.
type Artifact struct {
	Name     string
	ABI      abi.ABI
	Bytecode []byte
}

type hardhatArtifact struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     string          `json:"bytecode"`
}

// Parse decodes a hardhat artifact.
func Parse(data []byte) (*Artifact, error) {
	var raw hardhatArtifact
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode artifact: %w", err)
	}
	if len(raw.ABI) == 0 {
		return nil, fmt.Errorf("artifact %q has no abi", raw.ContractName)
	}

	parsed, err := abi.JSON(bytes.NewReader(raw.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse abi of %q: %w", raw.ContractName, err)
	}

	code := raw.Bytecode
	if !strings.HasPrefix(code, "0x") {
		code = "0x" + code
	}
	bytecode, err := hexutil.Decode(code)
	if err != nil {
		return nil, fmt.Errorf("failed to decode bytecode of %q: %w", raw.ContractName, err)
	}
	if len(bytecode) == 0 {
		return nil, fmt.Errorf("artifact %q has no bytecode, is it an interface?", raw.ContractName)
	}

	return &Artifact{Name: raw.ContractName, ABI: parsed, Bytecode: bytecode}, nil
}

// Load reads the artifact at path.
func Load(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	return Parse(data)
}

// Store resolves contract names against an artifacts directory. Both the flat
// layout (dir/Name.json) and the hardhat layout
// (dir/contracts/Name.sol/Name.json) are searched.
type Store struct {
	Dir string
}

func (s Store) Load(name string) (*Artifact, error) {
	if s.Dir == "" {
		return nil, fmt.Errorf("no artifacts directory configured, set --artifacts-dir")
	}

	candidates := []string{
		filepath.Join(s.Dir, name+".json"),
		filepath.Join(s.Dir, "contracts", name+".sol", name+".json"),
	}
	if matches, err := filepath.Glob(filepath.Join(s.Dir, "*", name+".sol", name+".json")); err == nil {
		candidates = append(candidates, matches...)
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return nil, fmt.Errorf("artifact %s not found in %s", name, s.Dir)
}
