package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/dompet/internal/config"
	"github.com/theirongolddev/dompet/internal/tui/components"
	"github.com/theirongolddev/dompet/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldLocale
	settingsFieldCurrency
	settingsFieldProvider
	settingsFieldModel
	settingsFieldAPIKey
	settingsFieldReset
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state. cfg is the working copy that
// is written back on every successful edit.
type settingsState struct {
	list    listState
	editing bool
	input   textinput.Model
	cfg     config.Config
	saved   bool
	saveErr error

	save func(config.Config) error
}

func newSettingsState(cfg config.Config) settingsState {
	return settingsState{cfg: cfg, save: config.Save}
}

func (a App) updateSettings(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		a.settings.list.move(1, settingsFieldCount)
	case "k", "up":
		a.settings.list.move(-1, settingsFieldCount)
	case "enter", "e":
		if a.settings.list.cursor == settingsFieldReset {
			a.data.RequestResetAll()
			return a, nil
		}
		if a.settings.list.cursor == settingsFieldTheme {
			a.cycleTheme()
			return a, nil
		}
		return a.settingsStartEdit()
	}
	return a, nil
}

// cycleTheme switches to the next theme and saves it.
func (a *App) cycleTheme() {
	next := theme.All[(theme.Index(a.settings.cfg.Appearance.Theme)+1)%len(theme.All)]
	a.settings.cfg.Appearance.Theme = next.Name
	theme.SetActive(next.Name)
	a.spinner.Style = a.spinner.Style.Foreground(theme.Active.Accent).Background(theme.Active.Surface)
	a.commitSettings()
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	cfg := a.settings.cfg
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	switch a.settings.list.cursor {
	case settingsFieldLocale:
		ti.Placeholder = "id-ID, en-US, ..."
		ti.SetValue(cfg.Display.Locale)
	case settingsFieldCurrency:
		ti.Placeholder = "Rp"
		ti.SetValue(cfg.Display.CurrencySymbol)
	case settingsFieldProvider:
		ti.Placeholder = config.ProviderGemini + " or " + config.ProviderOpenAI
		ti.SetValue(cfg.Advisor.Provider)
	case settingsFieldModel:
		ti.Placeholder = "empty for the provider default"
		ti.SetValue(cfg.Advisor.Model)
	case settingsFieldAPIKey:
		ti.Placeholder = "paste a key, empty to remove"
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '*'
		ti.SetValue(cfg.Advisor.APIKey)
	}

	ti.Focus()
	a.settings.editing = true
	a.settings.saved = false
	a.settings.input = ti
	return a, textinput.Blink
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.applySetting(strings.TrimSpace(a.settings.input.Value()))
		a.settings.editing = false
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a *App) applySetting(val string) {
	cfg := &a.settings.cfg
	switch a.settings.list.cursor {
	case settingsFieldLocale:
		if val != "" {
			cfg.Display.Locale = val
		}
	case settingsFieldCurrency:
		cfg.Display.CurrencySymbol = val
	case settingsFieldProvider:
		if val != config.ProviderGemini && val != config.ProviderOpenAI {
			a.settings.saveErr = fmt.Errorf("unknown provider %q", val)
			a.settings.saved = false
			return
		}
		cfg.Advisor.Provider = val
	case settingsFieldModel:
		cfg.Advisor.Model = val
	case settingsFieldAPIKey:
		cfg.Advisor.APIKey = val
	}
	a.commitSettings()
}

// commitSettings writes the working copy and applies the display settings
// immediately. Advisor changes take effect on the next start.
func (a *App) commitSettings() {
	a.settings.saveErr = a.settings.save(a.settings.cfg)
	a.settings.saved = a.settings.saveErr == nil
	a.data.Config.Display = a.settings.cfg.Display
	a.data.Config.Appearance = a.settings.cfg.Appearance
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := a.settings.cfg

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	apiKey := "(not set)"
	if key := config.GetAdvisorAPIKey(cfg); key != "" {
		apiKey = config.MaskAPIKey(key)
		if cfg.Advisor.APIKey == "" {
			apiKey += " (from environment)"
		}
	}
	modelName := cfg.Advisor.Model
	if modelName == "" {
		modelName = "(provider default)"
	}

	fields := []struct{ label, value string }{
		{"Theme", theme.ByName(cfg.Appearance.Theme).Label},
		{"Locale", cfg.Display.Locale},
		{"Currency symbol", cfg.Display.CurrencySymbol},
		{"Advice provider", cfg.Advisor.Provider},
		{"Advice model", modelName},
		{"API key", apiKey},
		{"Reset all data", "erase transactions, budgets, notes and PIN"},
	}

	innerW := components.CardInnerWidth(cw)
	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.list.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.list.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker + label + value)
			if pad := innerW - lipgloss.Width(marker) - lipgloss.Width(label) - lipgloss.Width(value); pad > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", pad)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit or cycle theme  [Esc] cancel"))

	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Data directory: ") + valueStyle.Render(config.DataDir(cfg)) + "\n")
	infoBody.WriteString(labelStyle.Render("Config file:    ") + valueStyle.Render(config.ConfigPath()) + "\n")
	infoBody.WriteString(labelStyle.Render("Advisor:        ") + valueStyle.Render(advisorStatus(a.data.Advisor.Configured())))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))
	return b.String()
}

func advisorStatus(configured bool) string {
	if configured {
		return "ready"
	}
	return "not configured"
}
