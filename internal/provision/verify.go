package provision

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"AptosTools/internal/crypto"
	"AptosTools/internal/profile"
	"AptosTools/pkg/logx"
)

// Status is the outcome of checking one account against the mnemonic.
type Status string

const (
	StatusOK         Status = "ok"
	StatusMissing    Status = "missing"
	StatusMismatch   Status = "mismatch"
	StatusUnreadable Status = "unreadable"
)

type Check struct {
	Index      int
	Path       string
	Address    crypto.Address
	ConfigPath string
	Status     Status
}

type VerifyReport struct {
	Checks  []Check
	Orphans []string
}

// OK is true when every account is present and matches.
func (r *VerifyReport) OK() bool {
	for _, c := range r.Checks {
		if c.Status != StatusOK {
			return false
		}
	}
	return true
}

// Verify re-derives Count accounts from the mnemonic file in opt.Dir and checks
// each provisioned profile against the derived keys. It never writes.
func Verify(ctx context.Context, opt Options) (*VerifyReport, error) {
	tmpl, err := opt.prepare()
	if err != nil {
		return nil, err
	}
	app := logx.With("verify")

	root, err := filepath.Abs(opt.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", opt.Dir, err)
	}
	opt.Dir = root

	raw, err := os.ReadFile(opt.MnemonicPath())
	if err != nil {
		return nil, fmt.Errorf("read mnemonic: %w", err)
	}
	seed, err := opt.Codec.ToSeed(string(raw))
	if err != nil {
		return nil, fmt.Errorf("mnemonic %q: %w", opt.MnemonicPath(), err)
	}

	report := &VerifyReport{}
	derived := make(map[string]bool, opt.Count)
	for i := 0; i < opt.Count; i++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		rec, err := deriveAccount(opt.Curve, seed, tmpl, i)
		if err != nil {
			return report, fmt.Errorf("derive account %d: %w", i, err)
		}
		derived[rec.addr.Hex()] = true

		c := Check{
			Index:      i,
			Path:       rec.path.String(),
			Address:    rec.addr,
			ConfigPath: opt.ConfigPath(rec.addr),
		}
		c.Status = check(c.ConfigPath, rec)
		report.Checks = append(report.Checks, c)

		if c.Status == StatusOK {
			app.Infow("account ok", "index", i, "account", rec.addr.String())
		} else {
			app.Warnw("account check failed", "index", i, "account", rec.addr.String(), "status", c.Status, "path", c.ConfigPath)
		}
	}

	if report.Orphans, err = findOrphans(root, derived); err != nil {
		return report, err
	}
	for _, o := range report.Orphans {
		app.Warnw("account directory not derived from the current mnemonic", "dir", o)
	}
	return report, nil
}

func check(cfgPath string, rec record) Status {
	b, err := os.ReadFile(cfgPath)
	if os.IsNotExist(err) {
		return StatusMissing
	}
	if err != nil {
		return StatusUnreadable
	}
	c, err := profile.Parse(b)
	if err != nil {
		return StatusUnreadable
	}
	if !matches(c, rec) {
		return StatusMismatch
	}
	return StatusOK
}
