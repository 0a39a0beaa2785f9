// Package config handles dompet's TOML configuration and static lookup data.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Advisor providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config holds all dompet configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Display    DisplayConfig    `toml:"display"`
	Advisor    AdvisorConfig    `toml:"advisor"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir string `toml:"data_dir,omitempty"`
}

// DisplayConfig controls how amounts are rendered. It never affects stored values.
type DisplayConfig struct {
	Locale         string `toml:"locale"`
	CurrencySymbol string `toml:"currency_symbol"`
}

// AdvisorConfig holds settings for the financial advice collaborator.
type AdvisorConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model,omitempty"`
	APIKey   string `toml:"api_key,omitempty"`
	BaseURL  string `toml:"base_url,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Display: DisplayConfig{
			Locale:         "id-ID",
			CurrencySymbol: "Rp",
		},
		Advisor: AdvisorConfig{
			Provider: ProviderGemini,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dompet")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "dompet")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir resolves where the database and log live: DOMPET_DATA_DIR, then the
// config value, then the XDG data directory.
func DataDir(cfg Config) string {
	if dir := os.Getenv("DOMPET_DATA_DIR"); dir != "" {
		return dir
	}
	if cfg.General.DataDir != "" {
		return cfg.General.DataDir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "dompet")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "dompet")
}

// DBPath returns the path of the on-device database.
func DBPath(cfg Config) string {
	return filepath.Join(DataDir(cfg), "dompet.db")
}

// LogPath returns the path of the log file.
func LogPath(cfg Config) string {
	return filepath.Join(DataDir(cfg), "dompet.log")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// GetAdvisorAPIKey returns the advisor key from env vars or config, in that order.
// API_KEY is accepted as a generic fallback for Gemini.
func GetAdvisorAPIKey(cfg Config) string {
	switch cfg.Advisor.Provider {
	case ProviderOpenAI:
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			return key
		}
	default:
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			return key
		}
		if key := os.Getenv("API_KEY"); key != "" {
			return key
		}
	}
	return cfg.Advisor.APIKey
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// MaskAPIKey shortens key for display.
func MaskAPIKey(key string) string {
	if len(key) > 16 {
		return key[:8] + "..." + key[len(key)-4:]
	}
	if len(key) > 4 {
		return key[:4] + "..."
	}
	return "****"
}
