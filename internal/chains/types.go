package chains

import "strings"

type AllChainsConfig struct {
	Networks      map[string]NetworkConfig `json:"networks" yaml:"networks"`
	ActiveNetwork string                   `json:"activeNetwork" yaml:"activeNetwork"`
	ActiveRPC     string                   `json:"activeRPC" yaml:"activeRPC"`
}

// NetworkConfig describes a network, its RPC endpoints and block explorer.
type NetworkConfig struct {
	Name     string `json:"name" yaml:"name"`
	ChainID  uint64 `json:"chainId" yaml:"chainId" mapstructure:"chainId"`
	RPCs     []RPC  `json:"rpcs" yaml:"rpcs"`
	Explorer string `json:"explorer" yaml:"explorer" mapstructure:"explorer"`
}

type RPC struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// Normalize lowercases network keys and copies each key into Name.
func (mc *AllChainsConfig) Normalize() {
	if mc == nil {
		return
	}
	out := make(map[string]NetworkConfig, len(mc.Networks))
	for name, n := range mc.Networks {
		key := strings.ToLower(strings.TrimSpace(name))
		n.Name = key
		n.Explorer = strings.TrimRight(strings.TrimSpace(n.Explorer), "/")
		out[key] = n
	}
	mc.Networks = out
	mc.ActiveNetwork = strings.ToLower(strings.TrimSpace(mc.ActiveNetwork))
}
