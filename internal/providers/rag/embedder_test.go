package rag

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/config"
	"github.com/BigOleEnterprise/pathfinder-discord-bot/pkg/retry"
)

func newTestEmbedder(baseURL string) *OpenAIEmbedder {
	e := NewOpenAIEmbedder(&config.OpenAIConfig{APIKey: "test-key", EmbeddingModel: "text-embedding-3-small"})
	e.baseURL = baseURL
	e.retrier = retry.NewRetrier(&retry.Config{MaxRetries: 0})
	return e
}

func TestOpenAIEmbedder_Embed(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/embeddings", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		fmt.Fprint(w, `{
			"data": [{"embedding": [0.1, -0.2, 0.3]}],
			"usage": {"total_tokens": 7}
		}`)
	}))
	defer server.Close()

	e := newTestEmbedder(server.URL)
	vec, err := e.Embed(context.Background(), "how do flat checks work")
	require.NoError(t, err)

	assert.Equal(t, []float32{0.1, -0.2, 0.3}, vec)
	assert.Equal(t, "text-embedding-3-small", gotBody["model"])
	assert.Equal(t, "how do flat checks work", gotBody["input"])
}

func TestOpenAIEmbedder_EmbedEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": [], "usage": {"total_tokens": 0}}`)
	}))
	defer server.Close()

	e := newTestEmbedder(server.URL)
	_, err := e.Embed(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func TestOpenAIEmbedder_EmbedServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	e := newTestEmbedder(server.URL)
	_, err := e.Embed(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 429")
}
