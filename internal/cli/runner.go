package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	ucli "github.com/urfave/cli/v2"
	"golang.org/x/term"

	"AptosTools/internal/hdkey"
	"AptosTools/internal/logsink"
	"AptosTools/internal/mnemonic"
	"AptosTools/internal/ops/encdec"
	"AptosTools/internal/provision"
	"AptosTools/pkg/appcfg"
	"AptosTools/pkg/config"
	"AptosTools/pkg/i18n"
	"AptosTools/pkg/logx"
)

type Runner struct {
	in     *bufio.Reader
	Out    io.Writer
	Conf   *appcfg.Config
	Msg    i18n.Messages
	Backup encdec.Params

	// ReadPassword prompts for a secret; defaults to a no-echo terminal read.
	ReadPassword func(prompt string) (string, error)
}

func NewRunner(conf *appcfg.Config) *Runner {
	if conf == nil {
		conf = appcfg.Default()
	}
	r := &Runner{
		in:     bufio.NewReader(os.Stdin),
		Out:    os.Stdout,
		Conf:   conf,
		Msg:    i18n.Get(conf.Language),
		Backup: encdec.StandardParams(),
	}
	r.ReadPassword = r.promptPassword
	return r
}

func (r *Runner) Run(args []string) error {
	return r.App().Run(args)
}

func (r *Runner) App() *ucli.App {
	return &ucli.App{
		Name:      "aptostools",
		Usage:     r.Msg.AppUsage,
		Writer:    r.Out,
		ErrWriter: r.Out,
		Commands: []*ucli.Command{
			{
				Name:   "generate",
				Usage:  r.Msg.GenerateUsage,
				Flags:  append(layoutFlags(), generateFlags()...),
				Action: r.handleGenerate,
			},
			{
				Name:   "verify",
				Usage:  r.Msg.VerifyUsage,
				Flags:  layoutFlags(),
				Action: r.handleVerify,
			},
			{
				Name:  "reveal",
				Usage: r.Msg.RevealUsage,
				Flags: []ucli.Flag{
					&ucli.StringFlag{Name: "file", Usage: "encrypted backup (<mnemonic-file>.json)", Required: true},
				},
				Action: r.handleReveal,
			},
		},
	}
}

func layoutFlags() []ucli.Flag {
	return []ucli.Flag{
		&ucli.StringFlag{Name: "dir", Aliases: []string{"d"}, Usage: "root directory for account profiles (absolute or relative)", Required: true},
		&ucli.IntFlag{Name: "count", Aliases: []string{"c"}, Usage: "number of accounts", Value: provision.DefaultCount},
		&ucli.StringFlag{Name: "path", Usage: "derivation path template, {i} is the account index", Value: hdkey.DefaultTemplate},
		&ucli.StringFlag{Name: "mnemonic-file", Usage: "name of the mnemonic file", Value: provision.DefaultMnemonicFile},
		&ucli.StringFlag{Name: "config-dir", Usage: "name of the per-account config directory", Value: provision.DefaultConfigDir},
		&ucli.StringFlag{Name: "config-file", Usage: "name of the per-account config file", Value: provision.DefaultConfigFile},
	}
}

func generateFlags() []ucli.Flag {
	return []ucli.Flag{
		&ucli.StringFlag{Name: "network", Aliases: []string{"n"}, Usage: "devnet, testnet, mainnet, local, custom or a key from --networks", Required: true},
		&ucli.StringFlag{Name: "node-url", Usage: "override the REST URL of the network"},
		&ucli.StringFlag{Name: "faucet-url", Usage: "override the faucet URL of the network"},
		&ucli.StringFlag{Name: "networks", Usage: "YAML file with extra networks"},
		&ucli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "overwrite an existing mnemonic file"},
		&ucli.IntFlag{Name: "strength", Usage: "entropy bits: 128 (12 words) .. 256 (24 words)", Value: 128},
		&ucli.BoolFlag{Name: "encrypt", Usage: "also write a password-encrypted copy of the mnemonic"},
		&ucli.StringFlag{Name: "hint", Usage: "password hint saved to hint.txt"},
	}
}

func layoutFrom(c *ucli.Context) provision.Options {
	return provision.Options{
		Layout: provision.Layout{
			Dir:          c.String("dir"),
			MnemonicFile: c.String("mnemonic-file"),
			ConfigDir:    c.String("config-dir"),
			ConfigFile:   c.String("config-file"),
		},
		Count:        c.Int("count"),
		PathTemplate: c.String("path"),
		Out:          c.App.Writer,
	}
}

func (r *Runner) handleGenerate(c *ucli.Context) error {
	networks := config.DefaultNetworks()
	if p := c.String("networks"); p != "" {
		var err error
		if networks, err = config.LoadNetworks(p); err != nil {
			return err
		}
	}
	network, err := networks.Resolve(c.String("network"), c.String("node-url"), c.String("faucet-url"))
	if err != nil {
		return err
	}

	opt := layoutFrom(c)
	opt.Force = c.Bool("force")
	opt.Network = network
	opt.Codec = mnemonic.BIP39{Strength: c.Int("strength")}
	opt.BackupParams = r.Backup
	if c.Bool("encrypt") {
		if opt.Password, err = r.newPassword(); err != nil {
			return err
		}
		opt.PassHint = c.String("hint")
	}

	if err := r.initRunLog("generate"); err != nil {
		return err
	}

	logx.S().Infow("start generation",
		"dir", opt.Dir,
		"network", network.Name,
		"rest_url", network.RestURL,
		"count", opt.Count,
		"force", opt.Force,
	)
	report, err := provision.Run(withInterrupt(c.Context), opt)
	if err != nil {
		logx.S().Errorw("generation error", "err", err)
		return err
	}

	fmt.Fprintln(r.Out, r.Msg.TranscribeNotice)
	for _, a := range report.Accounts {
		if a.Stale {
			fmt.Fprintf(r.Out, r.Msg.StaleNotice, a.ConfigPath)
		}
	}
	for _, o := range report.Orphans {
		fmt.Fprintf(r.Out, r.Msg.OrphanNotice, o)
	}
	if report.BackupPath != "" {
		fmt.Fprintf(r.Out, r.Msg.BackupSaved, report.BackupPath)
	}
	fmt.Fprintf(r.Out, r.Msg.Summary, report.Written(), report.Skipped(), report.MnemonicPath)
	return nil
}

func (r *Runner) handleVerify(c *ucli.Context) error {
	if err := r.initRunLog("verify"); err != nil {
		return err
	}
	report, err := provision.Verify(withInterrupt(c.Context), layoutFrom(c))
	if err != nil {
		return err
	}
	for _, ch := range report.Checks {
		fmt.Fprintf(r.Out, r.Msg.VerifyLine, ch.Index, ch.Path, ch.Address.Hex(), ch.Status)
	}
	for _, o := range report.Orphans {
		fmt.Fprintf(r.Out, r.Msg.OrphanNotice, o)
	}
	if !report.OK() {
		return errors.New(r.Msg.VerifyFailed)
	}
	fmt.Fprintln(r.Out, r.Msg.VerifyOK)
	return nil
}

func (r *Runner) handleReveal(c *ucli.Context) error {
	pwd, err := r.ReadPassword(r.Msg.PasswordPrompt)
	if err != nil {
		return err
	}
	phrase, err := encdec.Reveal(c.String("file"), pwd)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.Out, phrase)
	return nil
}

func (r *Runner) newPassword() (string, error) {
	pwd, err := r.ReadPassword(r.Msg.PasswordPrompt)
	if err != nil {
		return "", err
	}
	if pwd == "" {
		return "", encdec.ErrEmptyPassword
	}
	again, err := r.ReadPassword(r.Msg.PasswordRepeat)
	if err != nil {
		return "", err
	}
	if again != pwd {
		return "", errors.New(r.Msg.PasswordMismatch)
	}
	return pwd, nil
}

// initRunLog adds logs/<module>/<date>/<module>_<time>/app.log when logs_dir is set.
func (r *Runner) initRunLog(module string) error {
	if r.Conf.LogsDir == "" {
		return nil
	}
	dir, err := logsink.MakeModuleDirs(r.Conf.LogsDir, module, time.Now())
	if err != nil {
		return err
	}
	if err := logx.Init(logx.Config{
		Level:                r.Conf.LogLevel,
		FilePath:             filepath.Join(dir, "app.log"),
		HideSecretsInConsole: r.Conf.HideSecretsInConsole,
	}); err != nil {
		return fmt.Errorf("logx init for module failed: %w", err)
	}
	return nil
}

func (r *Runner) promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return r.prompt(), nil
	}
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

func (r *Runner) prompt() string {
	text, _ := r.in.ReadString('\n')
	return strings.TrimSpace(text)
}

func withInterrupt(parent context.Context) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-ch:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(ch)
	}()
	return ctx
}
