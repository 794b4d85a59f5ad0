package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600), "write %s", name)
	return path
}

func TestLoad_HydratesSections(t *testing.T) {
	t.Setenv("NO_DOTENV", "1")
	t.Setenv("OPENTERMINAL_BASE_URL", "")
	t.Setenv("OPENTERMINAL_API_KEY", "")
	dir := t.TempDir()

	writeFile(t, dir, "llm.yaml", `
base_url: https://llm.example/v1
api_key: test-key
default_model: gemini-2.5-flash
timeout: 5s
`)
	writeFile(t, dir, "market.yaml", `
tick_interval: 2s
watchlist:
  - symbol: AAPL
    name: Apple Inc.
    sector: Technology
    starting_price: 175.5
`)
	mainPath := writeFile(t, dir, "openterminal.yaml", `
Name: openterminal
Host: 127.0.0.1
Port: 8901
Env: dev
LLM:
  File: llm.yaml
Market:
  File: market.yaml
`)

	cfg, err := Load(mainPath)
	require.NoError(t, err, "load main config")

	assert.Equal(t, "dev", cfg.Env, "env should carry through")
	assert.False(t, cfg.IsTestEnv(), "dev is not the test env")
	assert.Equal(t, mainPath, cfg.MainPath(), "main path should be recorded")
	assert.Equal(t, dir, cfg.BaseDir(), "base dir should be the config dir")

	llmCfg := cfg.LLMConfig()
	require.NotNil(t, llmCfg, "llm section should hydrate")
	assert.Equal(t, "https://llm.example/v1", llmCfg.BaseURL)
	assert.Equal(t, 5*time.Second, llmCfg.Timeout)
	assert.True(t, llmCfg.Configured(), "api key present")

	mktCfg := cfg.MarketConfig()
	require.NotNil(t, mktCfg, "market section should hydrate")
	assert.Equal(t, 2*time.Second, mktCfg.TickInterval)
	require.Len(t, mktCfg.Watchlist, 1)
	assert.Equal(t, "AAPL", mktCfg.Watchlist[0].Symbol)
}

func TestLoad_DefaultsWhenSectionsAbsent(t *testing.T) {
	t.Setenv("NO_DOTENV", "1")
	dir := t.TempDir()
	mainPath := writeFile(t, dir, "openterminal.yaml", `
Name: openterminal
Host: 127.0.0.1
Port: 8901
`)

	cfg, err := Load(mainPath)
	require.NoError(t, err, "load minimal config")

	assert.Equal(t, "dev", cfg.Env, "env should default to dev")

	mktCfg := cfg.MarketConfig()
	require.NotNil(t, mktCfg, "market defaults should apply")
	assert.Equal(t, 1500*time.Millisecond, mktCfg.TickInterval)
	assert.NotEmpty(t, mktCfg.Seed(), "built-in watchlist should back an empty config")

	llmCfg := cfg.LLMConfig()
	require.NotNil(t, llmCfg, "llm defaults should apply")
	assert.NotEmpty(t, llmCfg.BaseURL, "default base url expected")
}

func TestLoad_RejectsUnknownEnv(t *testing.T) {
	t.Setenv("NO_DOTENV", "1")
	dir := t.TempDir()
	mainPath := writeFile(t, dir, "openterminal.yaml", `
Name: openterminal
Host: 127.0.0.1
Port: 8901
Env: staging
`)

	_, err := Load(mainPath)
	require.Error(t, err, "unknown env must be rejected")
	assert.Contains(t, err.Error(), "env must be one of")
}
