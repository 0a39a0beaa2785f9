package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/dompet/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.False(t, Exists())
}

func TestSaveThenLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Advisor.Provider = ProviderOpenAI
	cfg.Advisor.BaseURL = "http://localhost:11434/v1"
	cfg.Display.Locale = "en-US"
	require.NoError(t, Save(cfg))
	require.True(t, Exists())

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dompet"), 0o755))
	require.NoError(t, os.WriteFile(ConfigPath(), []byte("[general\n"), 0o600))

	_, err := Load()
	assert.Error(t, err)
}

func TestDataDir_Precedence(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg")
	t.Setenv("DOMPET_DATA_DIR", "")

	cfg := DefaultConfig()
	assert.Equal(t, filepath.Join("/xdg", "dompet"), DataDir(cfg))

	cfg.General.DataDir = "/from-config"
	assert.Equal(t, "/from-config", DataDir(cfg))

	t.Setenv("DOMPET_DATA_DIR", "/from-env")
	assert.Equal(t, "/from-env", DataDir(cfg))
	assert.Equal(t, filepath.Join("/from-env", "dompet.db"), DBPath(cfg))
}

func TestGetAdvisorAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg := DefaultConfig()
	cfg.Advisor.APIKey = "from-config"
	assert.Equal(t, "from-config", GetAdvisorAPIKey(cfg))

	t.Setenv("API_KEY", "legacy")
	assert.Equal(t, "legacy", GetAdvisorAPIKey(cfg))

	t.Setenv("GEMINI_API_KEY", "gemini")
	assert.Equal(t, "gemini", GetAdvisorAPIKey(cfg))

	cfg.Advisor.Provider = ProviderOpenAI
	assert.Equal(t, "from-config", GetAdvisorAPIKey(cfg))
	t.Setenv("OPENAI_API_KEY", "openai")
	assert.Equal(t, "openai", GetAdvisorAPIKey(cfg))
}

func TestCategoryRegistry(t *testing.T) {
	assert.Equal(t, "food", DefaultCategory(model.Expense).ID)
	assert.Equal(t, "salary", DefaultCategory(model.Income).ID)

	assert.True(t, ValidCategory(model.Expense, "health"))
	assert.False(t, ValidCategory(model.Income, "health"))
	assert.False(t, ValidCategory(model.Expense, "salary"))

	raw := CategoryOrRaw(model.Expense, "mystery")
	assert.Equal(t, "mystery", raw.Name)
	assert.Equal(t, fallbackCategoryColor, raw.Color)

	kind, ok := KindOfCategory("bonus")
	require.True(t, ok)
	assert.Equal(t, model.Income, kind)

	assert.Len(t, AllCategoryIDs(), 12)
}

func TestCategories_ReturnsCopy(t *testing.T) {
	cats := Categories(model.Expense)
	cats[0].Name = "changed"
	assert.Equal(t, "Food & Drinks", Categories(model.Expense)[0].Name)
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "AIzaSyAB...wxyz", MaskAPIKey("AIzaSyABCDEFGHIJKLMNOPwxyz"))
	assert.Equal(t, "sk-1...", MaskAPIKey("sk-12345"))
	assert.Equal(t, "****", MaskAPIKey("abc"))
}
