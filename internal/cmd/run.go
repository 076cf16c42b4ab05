package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/cinder-flash/cinder/internal/app"
	"github.com/cinder-flash/cinder/internal/component"
	"github.com/cinder-flash/cinder/internal/config"
	"github.com/cinder-flash/cinder/internal/tui"
)

// version is overridden at build time via -ldflags.
var version = "0.1.0"

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive flasher",
	Long: `Start the interactive terminal interface.

Requires a real terminal; pipe-friendly commands live under
"cinder events" and "cinder config".`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal; cinder run needs an interactive session")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	appCtx, err := app.New(cfg, app.WithVersion(version))
	if err != nil {
		return err
	}

	monitor := app.NewMonitor(appCtx.Events, cfg.UI.MaxEventLogLines)
	if err := appCtx.Components.Register("monitor", component.MustNew("monitor", monitor)); err != nil {
		return err
	}

	// Only watch when a config file is actually in play.
	if cfgPath := viper.ConfigFileUsed(); cfg.Watch.Enabled && cfgPath != "" {
		watcher := app.NewWatcher(cfgPath, cfg.Watch.Debounce(), appCtx.Events, appCtx.Log)
		if err := appCtx.Components.Register("config-watch", component.MustNew("config-watch", watcher)); err != nil {
			return err
		}
	}

	if err := appCtx.Start(context.Background()); err != nil {
		return err
	}
	defer func() {
		if serr := appCtx.Shutdown(); serr != nil {
			fmt.Fprintf(os.Stderr, "shutdown: %v\n", serr)
		}
	}()

	return tui.Run(appCtx)
}
