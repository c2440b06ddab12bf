package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jngu/ngubot/internal/adapters/openrouter"
	"github.com/jngu/ngubot/internal/application"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	return dir
}

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	isolate(t)

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, openrouter.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, openrouter.DefaultModel, cfg.Model)
	assert.Equal(t, application.DefaultMaxTurns, cfg.MaxTurns)
	assert.Equal(t, application.DefaultReplyLimit, cfg.ReplyLimit)
	assert.Equal(t, ":8080", cfg.HealthAddr)
	assert.Empty(t, cfg.DiscordToken)

	// built-in alias table applies when no file overrides it
	assert.Equal(t, []string{"Ngu", "งู"}, cfg.Aliases.AliasesFor("keyfungus"))
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("DISCORD_BOT_TOKEN", "token-123")
	t.Setenv("OPENROUTER_API_KEY", "sk-or-abc")
	t.Setenv("NGUBOT_LOG_LEVEL", "debug")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "token-123", cfg.DiscordToken)
	assert.Equal(t, "sk-or-abc", cfg.OpenRouterAPIKey)
	assert.Equal(t, "debug", cfg.LogLevel)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFileWithAliasTable(t *testing.T) {
	dir := isolate(t)

	content := `
model = "openai/gpt-4o-mini"
max_turns = 8

[[aliases]]
handle = "HappyBT"
names = ["Boss", "บอส"]

[[aliases]]
handle = "orengipratuu"
names = ["Faye"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "openai/gpt-4o-mini", cfg.Model)
	assert.Equal(t, 8, cfg.MaxTurns)
	assert.Equal(t, []string{"Boss", "บอส"}, cfg.Aliases.AliasesFor("HappyBT"))
	assert.Equal(t, []string{"Faye"}, cfg.Aliases.AliasesFor("orengipratuu"))

	// a file with aliases replaces the built-in table entirely
	assert.Nil(t, cfg.Aliases.AliasesFor("keyfungus"))
}

func TestLoadConfigFileWithoutAliasesKeepsDefaults(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("max_turns = 6\n"), 0o600))

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.MaxTurns)
	assert.Equal(t, []string{"Boss", "บอส"}, cfg.Aliases.AliasesFor("HappyBT"))
}

func TestValidateRequiresDiscordToken(t *testing.T) {
	err := Config{}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DISCORD_BOT_TOKEN")

	assert.NoError(t, Config{DiscordToken: "token"}.Validate())
}
