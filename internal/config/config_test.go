package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope", "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "aligntrack", cfg.Name)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, 128, cfg.LLM.CacheSize)
	assert.True(t, cfg.Sources.UseDemoFixtures)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".aligntrack", "config.yaml")

	cfg := DefaultConfig()
	cfg.LLM.Provider = "none"
	cfg.Sources.DocsDir = "specs"
	cfg.Sources.UseDemoFixtures = false
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "none", loaded.LLM.Provider)
	assert.Equal(t, "specs", loaded.Sources.DocsDir)
	assert.False(t, loaded.Sources.UseDemoFixtures)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm:\n  model: other-model\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "other-model", cfg.LLM.Model)
	// Untouched fields keep their defaults.
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, filepath.Join(".aligntrack", "aligntrack.db"), cfg.Store.DatabasePath)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm: [not a mapping"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ALIGNTRACK_LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("ALIGNTRACK_DB", "/tmp/other.db")
	t.Setenv("ALIGNTRACK_DEBUG", "1")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "test-key", cfg.LLM.APIKey)
	assert.Equal(t, "/tmp/other.db", cfg.Store.DatabasePath)
	assert.True(t, cfg.Logging.DebugMode)
}

func TestAPIKeyOnlyAppliesToMatchingProvider(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "gem-key")

	cfg := DefaultConfig() // provider anthropic
	cfg.applyEnvOverrides()
	assert.Empty(t, cfg.LLM.APIKey)
}

func TestParsedTimeout(t *testing.T) {
	assert.Equal(t, 90*time.Second, LLMConfig{Timeout: "90s"}.ParsedTimeout())
	assert.Equal(t, 60*time.Second, LLMConfig{Timeout: "garbage"}.ParsedTimeout())
	assert.Equal(t, 60*time.Second, LLMConfig{Timeout: "-5s"}.ParsedTimeout())
	assert.Equal(t, 60*time.Second, LLMConfig{}.ParsedTimeout())
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join("ws", ".aligntrack", "config.yaml"), DefaultPath("ws"))
}
