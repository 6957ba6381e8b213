package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "does-not-exist.toml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "shopassist", cfg.App.Name)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "text-embedding-3-small", cfg.LLM.EmbeddingModel)
	assert.Equal(t, 12, cfg.LLM.MaxHistory)
	assert.Equal(t, 300, cfg.Redis.CatalogTTLSeconds)
	assert.Equal(t, 10, cfg.Redis.CatalogDirtyTTLSeconds)
	assert.Equal(t, "chat.log.persist", cfg.RabbitMQ.ChatLogQueueName)
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[app]
port = 9090

[llm]
model = "gpt-4o"
temperature = 0.1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.InDelta(t, 0.1, cfg.LLM.Temperature, 1e-9)
	// Sections absent from the file keep their defaults.
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[app]\nport = 9090\n"), 0o644))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("APP_PORT", "7070")
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("REDIS_CATALOG_TTL_SECONDS", "60")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.App.Port)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, 60, cfg.Redis.CatalogTTLSeconds)
}

func TestLoadBadIntEnvFallsBack(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("APP_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.App.Port)
}

func TestHTTPAddrAndDSN(t *testing.T) {
	cfg := defaultConfig()
	cfg.App.Host = "127.0.0.1"
	cfg.App.Port = 8081

	assert.Equal(t, "127.0.0.1:8081", cfg.HTTPAddr())
	assert.Equal(t,
		"root:@tcp(127.0.0.1:3306)/shopassist?parseTime=true&loc=Local&charset=utf8mb4",
		cfg.MySQLDSN())
}
