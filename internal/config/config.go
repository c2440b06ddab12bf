package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/jngu/ngubot/internal/adapters/openrouter"
	"github.com/jngu/ngubot/internal/application"
	"github.com/jngu/ngubot/internal/domain"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".ngubot"
)

type Config struct {
	DiscordToken     string
	OpenRouterAPIKey string
	BaseURL          string
	Model            string
	MaxTokens        int
	Temperature      float64
	MaxTurns         int
	ReplyLimit       int
	ActionLogCap     int
	HealthAddr       string
	SelfPingURL      string
	SelfPingInterval time.Duration
	LogLevel         string
	Aliases          domain.AliasTable
}

// Load reads configuration from the optional TOML file (~/.ngubot or the
// working directory) with environment variables on top. The credential env
// names match what the bot has always used on its hosting platform.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	if homeDir, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(homeDir, configDir))
	}
	v.AddConfigPath(".")

	v.SetDefault("base_url", openrouter.DefaultBaseURL)
	v.SetDefault("model", openrouter.DefaultModel)
	v.SetDefault("max_tokens", openrouter.DefaultMaxTokens)
	v.SetDefault("temperature", openrouter.DefaultTemperature)
	v.SetDefault("max_turns", application.DefaultMaxTurns)
	v.SetDefault("reply_limit", application.DefaultReplyLimit)
	v.SetDefault("action_log_cap", application.DefaultActionLogCap)
	v.SetDefault("health_addr", ":8080")
	v.SetDefault("self_ping_interval", "10m")
	v.SetDefault("log_level", "info")

	for key, env := range map[string]string{
		"discord_token":      "DISCORD_BOT_TOKEN",
		"openrouter_api_key": "OPENROUTER_API_KEY",
		"health_addr":        "NGUBOT_HEALTH_ADDR",
		"self_ping_url":      "NGUBOT_SELF_PING_URL",
		"log_level":          "NGUBOT_LOG_LEVEL",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	aliases, err := loadAliasTable(v.ConfigFileUsed())
	if err != nil {
		return Config{}, err
	}

	return Config{
		DiscordToken:     v.GetString("discord_token"),
		OpenRouterAPIKey: v.GetString("openrouter_api_key"),
		BaseURL:          v.GetString("base_url"),
		Model:            v.GetString("model"),
		MaxTokens:        v.GetInt("max_tokens"),
		Temperature:      v.GetFloat64("temperature"),
		MaxTurns:         v.GetInt("max_turns"),
		ReplyLimit:       v.GetInt("reply_limit"),
		ActionLogCap:     v.GetInt("action_log_cap"),
		HealthAddr:       v.GetString("health_addr"),
		SelfPingURL:      v.GetString("self_ping_url"),
		SelfPingInterval: v.GetDuration("self_ping_interval"),
		LogLevel:         v.GetString("log_level"),
		Aliases:          aliases,
	}, nil
}

// Validate covers what must be present before the gateway session opens.
// The completion key is deliberately not required here; its absence
// degrades to a per-request "not configured" reply instead.
func (c Config) Validate() error {
	if c.DiscordToken == "" {
		return errors.New("DISCORD_BOT_TOKEN is required")
	}

	return nil
}
