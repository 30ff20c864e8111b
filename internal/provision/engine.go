package provision

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"AptosTools/internal/crypto"
	"AptosTools/internal/keystore"
	"AptosTools/internal/logsink"
	"AptosTools/internal/ops/encdec"
	"AptosTools/internal/profile"
	"AptosTools/pkg/logx"
)

// State is where an account index ended up.
type State string

const (
	StateWritten State = "written"
	StateSkipped State = "skipped" // config already present, left untouched
)

// AccountResult describes one provisioned index. It carries no key material.
type AccountResult struct {
	Index      int
	Path       string
	Address    crypto.Address
	ConfigPath string
	State      State
	// Stale marks a skipped config whose account differs from the one derived
	// from the current mnemonic.
	Stale bool
}

type Report struct {
	MnemonicPath string
	BackupPath   string
	Accounts     []AccountResult
	// Orphans are account directories in Dir that the current mnemonic does not
	// derive, typically left over from a mnemonic replaced with --force.
	Orphans []string
}

func (r *Report) count(s State) int {
	n := 0
	for _, a := range r.Accounts {
		if a.State == s {
			n++
		}
	}
	return n
}

func (r *Report) Written() int { return r.count(StateWritten) }
func (r *Report) Skipped() int { return r.count(StateSkipped) }

// Run generates one mnemonic for opt.Dir and provisions accounts 0..Count-1.
//
// The phrase is on disk before the first account is derived. Accounts whose
// config file already exists are skipped, so a failed run is repaired by running
// again; nothing written earlier is rolled back.
func Run(ctx context.Context, opt Options) (*Report, error) {
	tmpl, err := opt.prepare()
	if err != nil {
		return nil, err
	}
	app := logx.With("provision")

	root, err := filepath.Abs(opt.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", opt.Dir, err)
	}
	opt.Dir = root
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %q: %w", root, err)
	}

	mnPath := opt.MnemonicPath()
	present, err := exists(mnPath)
	if err != nil {
		return nil, err
	}
	if present && !opt.Force {
		return nil, fmt.Errorf("%w: %q, use --force to overwrite or specify a different directory", ErrMnemonicExists, mnPath)
	}
	if present {
		app.Warnw("overwriting existing mnemonic file", "path", mnPath)
	}

	phrase, err := opt.Codec.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate mnemonic: %w", err)
	}
	seed, err := opt.Codec.ToSeed(phrase)
	if err != nil {
		return nil, fmt.Errorf("expand mnemonic: %w", err)
	}

	fmt.Fprintln(opt.Out, phrase)
	if err := keystore.WriteDurable(mnPath, []byte(phrase), 0o600); err != nil {
		return nil, fmt.Errorf("write mnemonic %q: %w", mnPath, err)
	}
	report := &Report{MnemonicPath: mnPath}
	app.Infow("mnemonic saved", "path", mnPath, "words", len(strings.Fields(phrase)))

	if opt.Password != "" {
		report.BackupPath = mnPath + ".json"
		if err := encdec.WriteBackup(report.BackupPath, phrase, opt.Password, opt.BackupParams); err != nil {
			return report, err
		}
		if err := logsink.WriteHint(root, opt.PassHint); err != nil {
			return report, fmt.Errorf("write hint: %w", err)
		}
		app.Infow("encrypted backup saved", "path", report.BackupPath)
	} else if old, _ := exists(mnPath + ".json"); old {
		app.Warnw("encrypted backup belongs to the previous mnemonic", "path", mnPath+".json")
	}

	start := time.Now()
	derived := make(map[string]bool, opt.Count)
	for i := 0; i < opt.Count; i++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		rec, err := deriveAccount(opt.Curve, seed, tmpl, i)
		if err != nil {
			return report, fmt.Errorf("derive account %d: %w", i, err)
		}
		res, err := provisionOne(app, opt, rec)
		if err != nil {
			return report, fmt.Errorf("account %d (%s): %w", i, rec.addr.Hex(), err)
		}
		report.Accounts = append(report.Accounts, res)
		derived[rec.addr.Hex()] = true
	}

	if report.Orphans, err = findOrphans(root, derived); err != nil {
		return report, err
	}
	for _, o := range report.Orphans {
		app.Warnw("account directory not derived from the current mnemonic", "dir", o)
	}

	app.Infow("provisioning finished",
		"dir", root,
		"written", report.Written(),
		"skipped", report.Skipped(),
		"elapsed", time.Since(start).String(),
	)
	return report, nil
}

func provisionOne(app *zap.SugaredLogger, opt Options, rec record) (AccountResult, error) {
	cfgPath := opt.ConfigPath(rec.addr)
	res := AccountResult{
		Index:      rec.index,
		Path:       rec.path.String(),
		Address:    rec.addr,
		ConfigPath: cfgPath,
	}
	app.Infow("derived",
		"index", rec.index,
		"path", res.Path,
		"account", rec.addr.String(),
		"private_key", crypto.PrivToHex(rec.key.PrivateKey),
	)

	present, err := exists(cfgPath)
	if err != nil {
		return res, err
	}
	if present {
		res.State = StateSkipped
		res.Stale = isStale(app, cfgPath, rec)
		app.Infow("config file already exists, skipping account", "account", rec.addr.String(), "path", cfgPath)
		return res, nil
	}

	content, err := profile.Render(rec.toProfile(opt.Network))
	if err != nil {
		return res, err
	}
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return res, fmt.Errorf("mkdir: %w", err)
	}
	if err := keystore.WriteNew(cfgPath, content, 0o600); err != nil {
		if errors.Is(err, os.ErrExist) {
			return res, fmt.Errorf("config %q appeared during the run: %w", cfgPath, err)
		}
		return res, fmt.Errorf("write config: %w", err)
	}
	res.State = StateWritten
	app.Infow("created config file", "account", rec.addr.String(), "path", cfgPath)
	return res, nil
}

// isStale reports whether an existing profile holds a different account or key
// than rec. Files that do not parse as a profile are not judged.
func isStale(app *zap.SugaredLogger, cfgPath string, rec record) bool {
	b, err := os.ReadFile(cfgPath)
	if err != nil {
		app.Debugw("existing config unreadable", "path", cfgPath, "err", err)
		return false
	}
	c, err := profile.Parse(b)
	if err != nil {
		app.Debugw("existing config is not a profile", "path", cfgPath, "err", err)
		return false
	}
	if matches(c, rec) {
		return false
	}
	app.Warnw("existing config does not match the current mnemonic",
		"path", cfgPath,
		"config_account", c.Account,
		"derived_account", rec.addr.Hex(),
	)
	return true
}

func matches(c profile.Config, rec record) bool {
	got, err := crypto.ParseAddress(c.Account)
	if err != nil || got != rec.addr {
		return false
	}
	return strings.EqualFold(c.PrivateKey, crypto.PrivToHex(rec.key.PrivateKey))
}

// findOrphans lists directories under root named like an account address that
// are not in derived.
func findOrphans(root string, derived map[string]bool) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", root, err)
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		addr, err := crypto.ParseAddress(e.Name())
		if err != nil || derived[addr.Hex()] {
			continue
		}
		out = append(out, filepath.Join(root, e.Name()))
	}
	return out, nil
}
