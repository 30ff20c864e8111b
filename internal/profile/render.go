// Package profile renders the Aptos CLI config file for one account.
package profile

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultProfile is the profile name the Aptos CLI picks when none is given.
const DefaultProfile = "default"

// Config is one rendered account profile.
type Config struct {
	Network    string
	PrivateKey string // 0x-prefixed lowercase hex
	PublicKey  string // 0x-prefixed lowercase hex
	Account    string // hex, no prefix
	RestURL    string
	FaucetURL  string // omitted when empty
}

type file struct {
	Profiles map[string]entry `yaml:"profiles"`
}

type entry struct {
	Network    string `yaml:"network"`
	PrivateKey quoted `yaml:"private_key"`
	PublicKey  quoted `yaml:"public_key"`
	Account    string `yaml:"account"`
	RestURL    quoted `yaml:"rest_url"`
	FaucetURL  quoted `yaml:"faucet_url,omitempty"`
}

// quoted is emitted double-quoted, the way the Aptos CLI writes keys and URLs.
type quoted string

func (q quoted) MarshalYAML() (interface{}, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Style: yaml.DoubleQuotedStyle, Value: string(q)}, nil
}

// Render returns the YAML document for c under the default profile.
func Render(c Config) ([]byte, error) {
	doc := file{Profiles: map[string]entry{
		DefaultProfile: {
			Network:    c.Network,
			PrivateKey: quoted(c.PrivateKey),
			PublicKey:  quoted(c.PublicKey),
			Account:    c.Account,
			RestURL:    quoted(c.RestURL),
			FaucetURL:  quoted(c.FaucetURL),
		},
	}}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	return buf.Bytes(), nil
}

// Parse reads the default profile back from a rendered file.
func Parse(b []byte) (Config, error) {
	var doc file
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return Config{}, fmt.Errorf("decode profile: %w", err)
	}
	e, ok := doc.Profiles[DefaultProfile]
	if !ok {
		return Config{}, errors.New("decode profile: no default profile")
	}
	return Config{
		Network:    e.Network,
		PrivateKey: string(e.PrivateKey),
		PublicKey:  string(e.PublicKey),
		Account:    e.Account,
		RestURL:    string(e.RestURL),
		FaucetURL:  string(e.FaucetURL),
	}, nil
}
