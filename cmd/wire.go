package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/jngu/ngubot/internal/adapters/openrouter"
	"github.com/jngu/ngubot/internal/application"
	"github.com/jngu/ngubot/internal/config"
	"github.com/jngu/ngubot/internal/ports"
)

// app holds everything constructible without a live gateway session. The
// discord side is wired inside the run command, once credentials have been
// validated.
type app struct {
	cfg       config.Config
	log       zerolog.Logger
	history   *application.HistoryStore
	actions   *application.ActionLog
	channels  *application.ChannelTable
	completer ports.Completer
	clock     ports.Clock
}

func wireApp() (*app, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	log := newLogger(cfg.LogLevel)

	completer := openrouter.New(openrouter.Config{
		APIKey:      cfg.OpenRouterAPIKey,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: float32(cfg.Temperature),
	}, log)

	return &app{
		cfg:       cfg,
		log:       log,
		history:   application.NewHistoryStore(cfg.MaxTurns),
		actions:   application.NewActionLog(cfg.ActionLogCap),
		channels:  application.NewChannelTable(),
		completer: completer,
		clock:     ports.SystemClock{},
	}, nil
}

func newLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}

	return zerolog.New(os.Stderr).Level(parsed).With().Timestamp().Logger()
}
