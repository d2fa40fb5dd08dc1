package rag

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/config"
	"github.com/BigOleEnterprise/pathfinder-discord-bot/pkg/log"
	"github.com/BigOleEnterprise/pathfinder-discord-bot/pkg/retry"
)

// EmbeddingDimension is the vector size of text-embedding-3-small.
const EmbeddingDimension = 1536

// OpenAIEmbedder generates embedding vectors through the OpenAI embeddings
// API. Used for both rulebook chunks at ingest time and questions at query
// time.
type OpenAIEmbedder struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
	retrier *retry.Retrier
}

func NewOpenAIEmbedder(cfg *config.OpenAIConfig) *OpenAIEmbedder {
	return &OpenAIEmbedder{
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL: "https://api.openai.com",
		apiKey:  cfg.APIKey,
		model:   cfg.EmbeddingModel,
		retrier: retry.NewAPIRetrier(),
	}
}

// Embed returns the embedding vector for text.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	payload := map[string]any{
		"model": e.model,
		"input": text,
	}

	var result struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
		Usage struct {
			TotalTokens int `json:"total_tokens"`
		} `json:"usage"`
	}

	err := e.retrier.Do(ctx, func() error {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/v1/embeddings", bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := e.client.Do(req)
		if err != nil {
			return fmt.Errorf("request: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("http %d: %s", resp.StatusCode, string(body))
		}
		if err := json.Unmarshal(body, &result); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("openai embed: %w", err)
	}

	if len(result.Data) == 0 {
		return nil, fmt.Errorf("openai embed: empty response")
	}

	log.FromCtx(ctx).Debug().
		Int("chars", len(text)).
		Int("tokens", result.Usage.TotalTokens).
		Msg("embedded text")

	return result.Data[0].Embedding, nil
}
