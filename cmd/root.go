// Package cmd implements the dompet CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/theirongolddev/dompet/internal/advisor"
	"github.com/theirongolddev/dompet/internal/app"
	"github.com/theirongolddev/dompet/internal/config"
	"github.com/theirongolddev/dompet/internal/logging"
	"github.com/theirongolddev/dompet/internal/store"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagDebug     bool
	flagYes       bool
	flagEphemeral bool
)

var rootCmd = &cobra.Command{
	Use:           "dompet",
	Short:         "Personal budgeting in your terminal",
	Long:          "Record income and expenses, track monthly budgets, and keep notes. All data stays on this device.",
	RunE:          runSummary,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write debug-level entries to the log file")
	rootCmd.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "Skip confirmation prompts")
	rootCmd.PersistentFlags().BoolVar(&flagEphemeral, "ephemeral", false, "Use an in-memory store that is discarded on exit")
}

// loadConfig loads .env and the config file. A broken config file is
// reported and defaults are used.
func loadConfig() config.Config {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Warning: %v (using defaults)\n", err)
	}
	return cfg
}

func newLogger(cfg config.Config) *zap.Logger {
	if flagEphemeral {
		return zap.NewNop()
	}
	logger, err := logging.New(config.LogPath(cfg), flagDebug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Warning: logging disabled: %v\n", err)
		return zap.NewNop()
	}
	return logger
}

// openApp opens the stores for one command. The returned func must be called
// when the command is done.
func openApp(ctx context.Context) (*app.App, func(), error) {
	cfg := loadConfig()
	logger := newLogger(cfg)

	var a *app.App
	if flagEphemeral {
		gen, err := advisor.FromConfig(ctx, cfg)
		if err != nil {
			logger.Warn("advisor disabled", zap.Error(err))
			gen = nil
		}
		a = app.New(cfg, store.NewMemory(), gen, logger)
	} else {
		var err error
		a, err = app.Open(ctx, cfg, logger)
		if err != nil {
			_ = logger.Sync()
			return nil, nil, err
		}
	}

	logger.Debug("opened data", zap.String("dir", config.DataDir(cfg)), zap.Bool("ephemeral", flagEphemeral))
	done := func() {
		if err := a.Close(); err != nil {
			logger.Error("closing store", zap.Error(err))
		}
		_ = logger.Sync()
	}
	return a, done, nil
}

// withApp runs fn against freshly opened stores.
func withApp(cmd *cobra.Command, fn func(*app.App) error) error {
	a, done, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer done()
	return fn(a)
}

// errAborted is returned when the user backs out of a prompt.
var errAborted = errors.New("aborted")
