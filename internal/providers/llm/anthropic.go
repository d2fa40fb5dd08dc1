package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/config"
	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/core"
	"github.com/BigOleEnterprise/pathfinder-discord-bot/pkg/log"
	"github.com/BigOleEnterprise/pathfinder-discord-bot/pkg/retry"
)

const systemPrompt = `You are an expert on Pathfinder Second Edition (PF2E) rules.
Your role is to help players and Game Masters understand the rules clearly and accurately.

Guidelines:
- Provide concise, accurate answers based on official PF2E rules
- If you're unsure or the rule is ambiguous, say so
- Cite relevant mechanics (e.g., "According to the action economy rules...")
- Use clear examples when helpful
- Keep responses under 300 words unless more detail is explicitly requested
- Be friendly and encouraging to new players

If a question is not about Pathfinder 2E, politely redirect the user.`

const answerMaxTokens = 1024

// Anthropic answers rules questions through the Claude messages API.
type Anthropic struct {
	baseProvider
	retrier *retry.Retrier
}

func NewAnthropic(cfg *config.AnthropicConfig) *Anthropic {
	return &Anthropic{
		baseProvider: newBaseProvider("https://api.anthropic.com", cfg.APIKey, cfg.Model),
		retrier:      retry.NewAPIRetrier(),
	}
}

// Ask sends the question to Claude, prefixed with rulebook excerpts when the
// caller found relevant ones, and returns the answer with usage metadata.
func (a *Anthropic) Ask(ctx context.Context, question, rulebookContext string) (core.Answer, error) {
	userMessage := question
	if rulebookContext != "" {
		userMessage = fmt.Sprintf(
			"Here are relevant excerpts from the Pathfinder 2E rulebooks:\n\n%s\n\nUsing these excerpts where they apply, answer the question:\n%s",
			rulebookContext, question,
		)
	}

	type msg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	payload := map[string]any{
		"model":      a.model,
		"max_tokens": answerMaxTokens,
		"system":     systemPrompt,
		"messages":   []msg{{Role: "user", Content: userMessage}},
	}

	headers := map[string]string{
		"x-api-key":         a.apiKey,
		"anthropic-version": "2023-06-01",
	}

	var result struct {
		Model   string `json:"model"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		Usage struct {
			InputTokens  int `json:"input_tokens"`
			OutputTokens int `json:"output_tokens"`
		} `json:"usage"`
	}

	start := time.Now()
	err := a.retrier.Do(ctx, func() error {
		resp, err := a.doRequest(ctx, http.MethodPost, "/v1/messages", payload, headers)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
		}
		if err := json.Unmarshal(data, &result); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		return nil
	})
	if err != nil {
		return core.Answer{}, fmt.Errorf("anthropic ask: %w", err)
	}

	var text string
	for _, c := range result.Content {
		if c.Type == "text" {
			text += c.Text
		}
	}

	answer := core.Answer{
		Content:      text,
		Model:        result.Model,
		InputTokens:  result.Usage.InputTokens,
		OutputTokens: result.Usage.OutputTokens,
		ResponseTime: time.Since(start),
	}

	log.FromCtx(ctx).Debug().
		Str("model", answer.Model).
		Int("tokens", answer.TotalTokens()).
		Dur("elapsed", answer.ResponseTime).
		Msg("claude answered")

	return answer, nil
}
