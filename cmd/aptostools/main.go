package main

import (
	"fmt"
	"os"
	"path/filepath"

	"AptosTools/internal/cli"
	"AptosTools/pkg/appcfg"
	"AptosTools/pkg/i18n"
	"AptosTools/pkg/logx"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "getwd: %v\n", err)
		os.Exit(2)
	}

	appConf, err := appcfg.Load(filepath.Join(cwd, "configs", "app.yaml"))
	if err != nil {
		appConf = appcfg.Default()
	}

	if err := logx.Init(logx.Config{
		Level:                appConf.LogLevel,
		ConsoleOnly:          true,
		HideSecretsInConsole: appConf.HideSecretsInConsole,
		Console:              os.Stderr,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "log init: %v\n", err)
		os.Exit(1)
	}

	logx.S().Debugw("aptostools started",
		"cwd", cwd,
		"lang", appConf.Language,
		"log_level", appConf.LogLevel,
		"hide_secrets_in_console", appConf.HideSecretsInConsole,
	)

	err = cli.NewRunner(appConf).Run(os.Args)
	logx.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, i18n.Get(appConf.Language).ErrorPrefix, err)
		os.Exit(1)
	}
}
