package hdkey

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	hdwallet "github.com/miguelmota/go-ethereum-hdwallet"
)

// AptosCoinType is the SLIP-0044 coin type registered for Aptos.
const AptosCoinType uint32 = 637

// IndexPlaceholder marks the address index in a path template.
const IndexPlaceholder = "{i}"

// DefaultTemplate is the path the Aptos wallets use for account i.
const DefaultTemplate = "m/44'/637'/{i}'/0'/0'"

var ErrTemplate = errors.New("invalid derivation path template")

// ParsePath parses an absolute path like m/44'/637'/0'/0'/0' and requires every
// segment to be hardened.
func ParsePath(s string) (accounts.DerivationPath, error) {
	if !strings.HasPrefix(strings.TrimSpace(s), "m/") {
		return nil, fmt.Errorf("path %q: must start with m/", s)
	}
	path, err := hdwallet.ParseDerivationPath(s)
	if err != nil {
		return nil, fmt.Errorf("path %q: %w", s, err)
	}
	if err := checkHardened(path); err != nil {
		return nil, err
	}
	return path, nil
}

// Template is a derivation path with a single address-index substitution point.
type Template struct {
	raw string
}

// ParseTemplate validates tmpl by rendering it for index 0: exactly one {i},
// a fully hardened path and the Aptos coin type in the second segment.
func ParseTemplate(tmpl string) (Template, error) {
	tmpl = strings.TrimSpace(tmpl)
	if n := strings.Count(tmpl, IndexPlaceholder); n != 1 {
		return Template{}, fmt.Errorf("%w: %q must contain %s exactly once (found %d)", ErrTemplate, tmpl, IndexPlaceholder, n)
	}
	t := Template{raw: tmpl}
	path, err := t.Path(0)
	if err != nil {
		return Template{}, fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	if len(path) < 2 || path[1] != HardenedOffset+AptosCoinType {
		return Template{}, fmt.Errorf("%w: %q: coin type must be %d'", ErrTemplate, tmpl, AptosCoinType)
	}
	return t, nil
}

// Path renders the template for address index i.
func (t Template) Path(i int) (accounts.DerivationPath, error) {
	return ParsePath(t.Render(i))
}

// Render substitutes i into the template without parsing the result.
func (t Template) Render(i int) string {
	return strings.Replace(t.raw, IndexPlaceholder, strconv.Itoa(i), 1)
}

func (t Template) Raw() string { return t.raw }
