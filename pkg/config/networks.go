package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Network is what a profile needs to know about the chain it talks to.
type Network struct {
	Name      string `yaml:"name"`       // rendered as-is into the profile, e.g. "Devnet"
	RestURL   string `yaml:"rest_url"`   // fullnode REST endpoint
	FaucetURL string `yaml:"faucet_url"` // optional, omitted from the profile when empty
}

// NetworksConfig is the optional networks file that extends the built-in table.
type NetworksConfig struct {
	Networks map[string]Network `yaml:"networks"`
}

// Networks maps the --network key to its endpoints.
type Networks map[string]Network

// DefaultNetworks returns the built-in table.
func DefaultNetworks() Networks {
	return Networks{
		"devnet": {
			Name:      "Devnet",
			RestURL:   "https://fullnode.devnet.aptoslabs.com/v1",
			FaucetURL: "https://faucet.devnet.aptoslabs.com",
		},
		"testnet": {
			Name:      "Testnet",
			RestURL:   "https://fullnode.testnet.aptoslabs.com/v1",
			FaucetURL: "https://faucet.testnet.aptoslabs.com",
		},
		"mainnet": {
			Name:    "Mainnet",
			RestURL: "https://fullnode.mainnet.aptoslabs.com/v1",
		},
		"local": {
			Name:      "Local",
			RestURL:   "http://localhost:8080/v1",
			FaucetURL: "http://localhost:8081",
		},
		"custom": {
			Name: "Custom",
		},
	}
}

// LoadNetworks reads path and merges it over the built-in table.
func LoadNetworks(path string) (Networks, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open networks %q: %w", path, err)
	}
	defer f.Close()

	var cfg NetworksConfig
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode yaml %q: %w", path, err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("networks validation %q: %w", path, err)
	}

	out := DefaultNetworks()
	for key, n := range cfg.Networks {
		out[strings.ToLower(key)] = n
	}
	return out, nil
}

func validate(c *NetworksConfig) error {
	if c == nil {
		return errors.New("nil config")
	}
	if len(c.Networks) == 0 {
		return errors.New("no networks defined")
	}
	for key, n := range c.Networks {
		if strings.TrimSpace(key) == "" {
			return errors.New("network key must not be empty")
		}
		if n.Name == "" {
			return fmt.Errorf("networks.%s.name must not be empty", key)
		}
		if n.RestURL == "" {
			return fmt.Errorf("networks.%s.rest_url must not be empty", key)
		}
	}
	return nil
}

// Resolve picks network key and applies non-empty URL overrides.
func (ns Networks) Resolve(key, restURL, faucetURL string) (Network, error) {
	n, ok := ns[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return Network{}, fmt.Errorf("unknown network %q (known: %s)", key, strings.Join(ns.Keys(), ", "))
	}
	if restURL != "" {
		n.RestURL = restURL
	}
	if faucetURL != "" {
		n.FaucetURL = faucetURL
	}
	return n, nil
}

// Keys returns the sorted network keys.
func (ns Networks) Keys() []string {
	keys := make([]string, 0, len(ns))
	for k := range ns {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
