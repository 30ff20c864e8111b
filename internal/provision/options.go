package provision

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"AptosTools/internal/hdkey"
	"AptosTools/internal/mnemonic"
	"AptosTools/internal/ops/encdec"
	"AptosTools/pkg/config"
)

const (
	DefaultMnemonicFile = "aptos_mnemonic.txt"
	DefaultConfigDir    = ".aptos"
	DefaultConfigFile   = "config.yaml"
	DefaultCount        = 10
)

var (
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrMnemonicExists = errors.New("mnemonic file already exists")
)

// Layout names the files inside a target directory.
type Layout struct {
	Dir          string // root; account directories are created below it
	MnemonicFile string // aptos_mnemonic.txt
	ConfigDir    string // .aptos
	ConfigFile   string // config.yaml
}

type Options struct {
	Layout

	Count        int
	PathTemplate string // m/44'/637'/{i}'/0'/0'
	Force        bool   // replace an existing mnemonic file
	Network      config.Network

	// Password, when set, also writes an encrypted copy of the mnemonic to
	// <MnemonicFile>.json. PassHint goes to hint.txt in Dir.
	Password     string
	PassHint     string
	BackupParams encdec.Params

	Out   io.Writer      // receives the phrase for transcription; os.Stdout when nil
	Codec mnemonic.Codec // BIP39{Strength: 128} when nil
	Curve hdkey.Curve    // hdkey.Ed25519 when nil
}

func (l *Layout) withDefaults() {
	if l.MnemonicFile == "" {
		l.MnemonicFile = DefaultMnemonicFile
	}
	if l.ConfigDir == "" {
		l.ConfigDir = DefaultConfigDir
	}
	if l.ConfigFile == "" {
		l.ConfigFile = DefaultConfigFile
	}
}

func (l Layout) validate() error {
	if strings.TrimSpace(l.Dir) == "" {
		return fmt.Errorf("%w: target directory is required", ErrInvalidConfig)
	}
	for name, v := range map[string]string{
		"mnemonic file": l.MnemonicFile,
		"config dir":    l.ConfigDir,
		"config file":   l.ConfigFile,
	} {
		if v == "." || v == ".." || strings.ContainsRune(v, os.PathSeparator) || strings.ContainsRune(v, '/') {
			return fmt.Errorf("%w: %s %q must be a plain name", ErrInvalidConfig, name, v)
		}
	}
	return nil
}

// prepare fills defaults and rejects bad input before any entropy or file I/O.
func (o *Options) prepare() (hdkey.Template, error) {
	o.withDefaults()
	if o.PathTemplate == "" {
		o.PathTemplate = hdkey.DefaultTemplate
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Codec == nil {
		o.Codec = mnemonic.BIP39{Strength: 128}
	}
	if o.Curve == nil {
		o.Curve = hdkey.Ed25519{}
	}
	if o.BackupParams == (encdec.Params{}) {
		o.BackupParams = encdec.StandardParams()
	}

	if err := o.Layout.validate(); err != nil {
		return hdkey.Template{}, err
	}
	if o.Count <= 0 {
		return hdkey.Template{}, fmt.Errorf("%w: count must be positive, got %d", ErrInvalidConfig, o.Count)
	}
	tmpl, err := hdkey.ParseTemplate(o.PathTemplate)
	if err != nil {
		return hdkey.Template{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return tmpl, nil
}
