package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jngu/ngubot/internal/domain"
)

func completionServer(t *testing.T, content string, capture *map[string]any) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Contains(t, r.URL.Path, "/chat/completions")

		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		})
	}))
}

func TestCompleteSubmitsRenderedTurnsAndFixedParameters(t *testing.T) {
	var captured map[string]any
	server := completionServer(t, "hello there", &captured)
	defer server.Close()

	client := New(Config{APIKey: "test-key", BaseURL: server.URL}, zerolog.Nop())

	reply, err := client.Complete(context.Background(), []domain.Turn{
		{Role: domain.RoleSystem, Content: "persona"},
		{Role: domain.RoleUser, Content: "hi", Speaker: "Boss"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello there", reply)

	assert.Equal(t, DefaultModel, captured["model"])
	assert.EqualValues(t, DefaultMaxTokens, captured["max_tokens"])
	assert.InDelta(t, DefaultTemperature, captured["temperature"], 0.001)

	messages, ok := captured["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	user := messages[1].(map[string]any)
	assert.Equal(t, "user", user["role"])
	assert.Equal(t, "Boss: hi", user["content"])
}

func TestCompleteWithoutAPIKeyFailsFastWithoutRequest(t *testing.T) {
	client := New(Config{BaseURL: "http://127.0.0.1:1"}, zerolog.Nop())

	_, err := client.Complete(context.Background(), []domain.Turn{{Role: domain.RoleUser, Content: "hi"}})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestCompleteEmptyContentIsEmptyCompletion(t *testing.T) {
	server := completionServer(t, "   ", nil)
	defer server.Close()

	client := New(Config{APIKey: "test-key", BaseURL: server.URL}, zerolog.Nop())

	_, err := client.Complete(context.Background(), []domain.Turn{{Role: domain.RoleUser, Content: "hi"}})
	assert.ErrorIs(t, err, domain.ErrEmptyCompletion)
}

func TestCompleteWrapsTransportErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream broke", http.StatusBadGateway)
	}))
	defer server.Close()

	client := New(Config{APIKey: "test-key", BaseURL: server.URL}, zerolog.Nop())

	_, err := client.Complete(context.Background(), []domain.Turn{{Role: domain.RoleUser, Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create chat completion")
}

func TestConfigDefaultsApplied(t *testing.T) {
	client := New(Config{APIKey: "k"}, zerolog.Nop())

	assert.Equal(t, DefaultBaseURL, client.cfg.BaseURL)
	assert.Equal(t, DefaultModel, client.cfg.Model)
	assert.Equal(t, DefaultMaxTokens, client.cfg.MaxTokens)
	assert.InDelta(t, DefaultTemperature, client.cfg.Temperature, 0.001)
}
