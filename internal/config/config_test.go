package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "llama3-70b-8192", cfg.LLM.Model)
	assert.Equal(t, "8000", cfg.Port)
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
llm:
  provider: anthropic
  model: claude-3-5-haiku-latest
  temperature: 0.2
port: "9000"
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "claude-3-5-haiku-latest", cfg.LLM.Model)
	assert.Equal(t, "9000", cfg.Port)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("LLM_MODEL", "mixtral-8x7b-32768")
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("PORT", "8081")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "mixtral-8x7b-32768", cfg.LLM.Model)
	assert.Equal(t, "gsk_test", cfg.LLM.APIKey)
	assert.Equal(t, "8081", cfg.Port)
}

func TestMissingCredentialIsNotALoadError(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.LLM.APIKey)
}

func TestInvalidProviderRejected(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "carrier-pigeon")
	_, err := Load("")
	assert.Error(t, err)
}
