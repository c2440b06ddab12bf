package openrouter

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/jngu/ngubot/internal/domain"
	"github.com/jngu/ngubot/internal/ports"
)

const (
	DefaultBaseURL     = "https://openrouter.ai/api/v1"
	DefaultModel       = "meta-llama/llama-4-maverick:free"
	DefaultMaxTokens   = 500
	DefaultTemperature = 0.7
)

type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Temperature <= 0 {
		c.Temperature = DefaultTemperature
	}
}

// Client speaks the OpenAI-compatible chat-completion API through
// OpenRouter. Generation parameters are fixed at construction.
type Client struct {
	api *openai.Client
	cfg Config
	log zerolog.Logger
}

var _ ports.Completer = (*Client)(nil)

func New(cfg Config, log zerolog.Logger) *Client {
	cfg.applyDefaults()

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	apiCfg.BaseURL = cfg.BaseURL

	return &Client{
		api: openai.NewClientWithConfig(apiCfg),
		cfg: cfg,
		log: log.With().Str("component", "openrouter").Str("model", cfg.Model).Logger(),
	}
}

func (c *Client) Complete(ctx context.Context, turns []domain.Turn) (string, error) {
	if c.cfg.APIKey == "" {
		return "", domain.ErrNotConfigured
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(turns))
	for _, turn := range turns {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    roleFor(turn.Role),
			Content: turn.Rendered(),
		})
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", domain.ErrEmptyCompletion
	}

	c.log.Debug().Int("turns", len(turns)).Msg("completion returned")

	return resp.Choices[0].Message.Content, nil
}

func roleFor(role domain.Role) string {
	switch role {
	case domain.RoleSystem:
		return openai.ChatMessageRoleSystem
	case domain.RoleAssistant:
		return openai.ChatMessageRoleAssistant
	default:
		return openai.ChatMessageRoleUser
	}
}
