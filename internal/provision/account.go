package provision

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/accounts"

	"AptosTools/internal/crypto"
	"AptosTools/internal/hdkey"
	"AptosTools/internal/profile"
	"AptosTools/pkg/config"
)

// record is one derived account. It lives for a single loop iteration.
type record struct {
	index int
	path  accounts.DerivationPath
	key   hdkey.KeyPair
	addr  crypto.Address
}

func deriveAccount(curve hdkey.Curve, seed []byte, tmpl hdkey.Template, index int) (record, error) {
	path, err := tmpl.Path(index)
	if err != nil {
		return record{}, err
	}
	key, err := hdkey.Derive(curve, seed, path)
	if err != nil {
		return record{}, err
	}
	return record{
		index: index,
		path:  path,
		key:   key,
		addr:  crypto.AddressOf(key.PublicKey),
	}, nil
}

func (r record) toProfile(n config.Network) profile.Config {
	return profile.Config{
		Network:    n.Name,
		PrivateKey: crypto.PrivToHex(r.key.PrivateKey),
		PublicKey:  crypto.PubToHex(r.key.PublicKey),
		Account:    r.addr.Hex(),
		RestURL:    n.RestURL,
		FaucetURL:  n.FaucetURL,
	}
}

// AccountDir is <Dir>/<address hex>.
func (l Layout) AccountDir(addr crypto.Address) string {
	return filepath.Join(l.Dir, addr.Hex())
}

// ConfigPath is <Dir>/<address hex>/<ConfigDir>/<ConfigFile>.
func (l Layout) ConfigPath(addr crypto.Address) string {
	return filepath.Join(l.AccountDir(addr), l.ConfigDir, l.ConfigFile)
}

func (l Layout) MnemonicPath() string {
	return filepath.Join(l.Dir, l.MnemonicFile)
}

func exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, fmt.Errorf("stat %q: %w", path, err)
	}
}
