package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed networks.yaml
var embeddedNetworks []byte

type Network struct {
	L1 L1Network `yaml:"l1"`
	L2 L2Network `yaml:"l2"`
}

type L1Network struct {
	RPC                  string `yaml:"rpc"`
	ChainID              uint64 `yaml:"chain_id"`
	StandardBridge       string `yaml:"standard_bridge"`
	CrossDomainMessenger string `yaml:"cross_domain_messenger"`
	ERC721Bridge         string `yaml:"erc721_bridge"`
	OptimismPortal       string `yaml:"optimism_portal"`
	L2OutputOracle       string `yaml:"l2_output_oracle"`
	MNT                  string `yaml:"mnt"`
}

type L2Network struct {
	RPC                           string `yaml:"rpc"`
	ChainID                       uint64 `yaml:"chain_id"`
	StandardBridge                string `yaml:"standard_bridge"`
	CrossDomainMessenger          string `yaml:"cross_domain_messenger"`
	ERC721Bridge                  string `yaml:"erc721_bridge"`
	OptimismMintableERC20Factory  string `yaml:"optimism_mintable_erc20_factory"`
	OptimismMintableERC721Factory string `yaml:"optimism_mintable_erc721_factory"`
	MNT                           string `yaml:"mnt"`
}

// Networks maps preset names to networks.
type Networks map[string]Network

func ParseNetworks(data []byte) (Networks, error) {
	var networks Networks
	if err := yaml.Unmarshal(data, &networks); err != nil {
		return nil, fmt.Errorf("failed to parse networks: %w", err)
	}
	return networks, nil
}

// LoadNetworks reads presets from path, or the built-in presets when path is empty.
func LoadNetworks(path string) (Networks, error) {
	if path == "" {
		return ParseNetworks(embeddedNetworks)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read networks file: %w", err)
	}
	return ParseNetworks(data)
}

func (n Networks) Get(name string) (Network, error) {
	network, ok := n[name]
	if !ok {
		return Network{}, fmt.Errorf("unknown network %q, known networks: %v", name, n.Names())
	}
	return network, nil
}

func (n Networks) Names() []string {
	names := make([]string, 0, len(n))
	for name := range n {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
