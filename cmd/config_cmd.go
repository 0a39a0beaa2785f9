package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/dompet/internal/cli"
	"github.com/theirongolddev/dompet/internal/config"
	"github.com/theirongolddev/dompet/internal/store"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory: %s\n", config.DataDir(cfg))
	fmt.Printf("    Log file:       %s\n", config.LogPath(cfg))
	fmt.Println()

	fmt.Println("  [Data]")
	printRecordTimes(cfg)
	fmt.Println()

	fmt.Println("  [Display]")
	fmt.Printf("    Locale:          %s\n", cfg.Display.Locale)
	fmt.Printf("    Currency symbol: %s\n", cfg.Display.CurrencySymbol)
	fmt.Println()

	fmt.Println("  [Advisor]")
	fmt.Printf("    Provider: %s\n", cfg.Advisor.Provider)
	if cfg.Advisor.Model != "" {
		fmt.Printf("    Model:    %s\n", cfg.Advisor.Model)
	}
	if cfg.Advisor.BaseURL != "" {
		fmt.Printf("    Base URL: %s\n", cfg.Advisor.BaseURL)
	}
	if key := config.GetAdvisorAPIKey(cfg); key != "" {
		fmt.Printf("    API key:  %s\n", config.MaskAPIKey(key))
	} else {
		fmt.Println("    API key:  not configured")
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `dompet setup` to reconfigure.")
	return nil
}

// printRecordTimes lists when each record was last written. The database is
// only opened if it already exists.
func printRecordTimes(cfg config.Config) {
	path := config.DBPath(cfg)
	if _, err := os.Stat(path); err != nil {
		fmt.Println("    Nothing saved yet")
		return
	}
	db, err := store.Open(path)
	if err != nil {
		fmt.Printf("    Could not open %s: %v\n", path, err)
		return
	}
	defer db.Close()

	now := time.Now()
	for _, key := range store.AllKeys {
		when := "never"
		if t, ok := db.UpdatedAt(key); ok {
			when = cli.FormatRelative(t, now)
		}
		fmt.Printf("    %-14s %s\n", key+":", when)
	}
}
