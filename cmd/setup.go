package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/dompet/internal/config"
	"github.com/theirongolddev/dompet/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	apiKey := ""
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Label, t.Name))
	}

	keyHint := "Press Enter to skip. GEMINI_API_KEY / OPENAI_API_KEY also work."
	if existing := config.GetAdvisorAPIKey(cfg); existing != "" {
		keyHint = "Current: " + config.MaskAPIKey(existing) + ". Press Enter to keep it."
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to dompet!").
				Description("Everything is stored on this device.\nA few settings and you are ready."),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Locale for number formatting").
				Description("e.g. id-ID, en-US").
				Value(&cfg.Display.Locale),
			huh.NewInput().
				Title("Currency symbol").
				Value(&cfg.Display.CurrencySymbol),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Advice provider").
				Options(
					huh.NewOption("Google Gemini", config.ProviderGemini),
					huh.NewOption("OpenAI-compatible", config.ProviderOpenAI),
				).
				Value(&cfg.Advisor.Provider),
			huh.NewInput().
				Title("API key").
				Description(keyHint).
				EchoMode(huh.EchoModePassword).
				Value(&apiKey),
			huh.NewInput().
				Title("Model").
				Description("Leave empty for the provider default.").
				Value(&cfg.Advisor.Model),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&cfg.Appearance.Theme),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return fmt.Errorf("setup: %w", err)
	}

	if key := strings.TrimSpace(apiKey); key != "" {
		cfg.Advisor.APIKey = key
	}
	cfg.Display.Locale = strings.TrimSpace(cfg.Display.Locale)

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `dompet setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
