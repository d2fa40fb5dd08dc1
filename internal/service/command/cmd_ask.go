package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/service/ask"
	"github.com/BigOleEnterprise/pathfinder-discord-bot/pkg/log"
)

type AskCommand struct {
	svc       *ask.Service
	formatter *ResponseFormatter
}

func NewAskCommand(svc *ask.Service) *AskCommand {
	return &AskCommand{
		svc:       svc,
		formatter: NewResponseFormatter(),
	}
}

func (c *AskCommand) Name() string {
	return "ask"
}

func (c *AskCommand) Description() string {
	return "Ask a Pathfinder 2E rules question"
}

func (c *AskCommand) Execute(ctx context.Context, actorID int64, args []string) (string, error) {
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return c.formatter.Combine(
			c.formatter.Title("🎲", "Pathfinder 2E Rules"),
			c.formatter.Usage("/ask [your rules question]"),
			c.formatter.Examples([]string{
				"/ask How many actions does a strike cost?",
				"/ask What does the off-guard condition do?",
			}),
		), nil
	}

	resp, err := c.svc.Ask(ctx, actorID, question)
	if err != nil {
		var limited *ask.RateLimitedError
		if errors.As(err, &limited) {
			reset := limited.Reset.Round(time.Second)
			return "", fmt.Errorf("too many requests, try again in %dm %ds",
				int(reset.Minutes()), int(reset.Seconds())%60)
		}
		return "", err
	}

	log.FromCtx(ctx).Info().
		Int64("user_id", actorID).
		Int("tokens", resp.Answer.TotalTokens()).
		Int("sources", len(resp.Sources)).
		Msg("question answered")

	footer := "Powered by Claude"
	if len(resp.Sources) > 0 {
		footer += fmt.Sprintf(" • 📚 %d rulebook excerpts (see /sources)", len(resp.Sources))
	}

	return c.formatter.Combine(
		c.formatter.Title("🎲", "Pathfinder 2E Rules"),
		resp.Answer.Content+"\n",
		c.formatter.Label("Question", fmt.Sprintf("*%s*", question)),
		c.formatter.Footer(footer),
	), nil
}
