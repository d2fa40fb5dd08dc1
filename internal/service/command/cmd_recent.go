package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/service/ask"
)

const recentQuestionsLimit = 5

type RecentCommand struct {
	svc       *ask.Service
	formatter *ResponseFormatter
}

func NewRecentCommand(svc *ask.Service) *RecentCommand {
	return &RecentCommand{
		svc:       svc,
		formatter: NewResponseFormatter(),
	}
}

func (c *RecentCommand) Name() string {
	return "recent"
}

func (c *RecentCommand) Description() string {
	return "Show recently answered questions"
}

func (c *RecentCommand) Execute(ctx context.Context, actorID int64, args []string) (string, error) {
	logs, err := c.svc.RecentQuestions(ctx, recentQuestionsLimit)
	if err != nil {
		return "", fmt.Errorf("failed to load recent questions: %w", err)
	}
	if len(logs) == 0 {
		return "No questions have been asked yet.", nil
	}

	items := make([]string, 0, len(logs))
	for _, q := range logs {
		question := q.Question
		if len(question) > 80 {
			question = question[:80] + "..."
		}
		items = append(items, fmt.Sprintf("*%s* (%d tokens)", question, q.TotalTokens))
	}

	var sb strings.Builder
	sb.WriteString(c.formatter.Title("🕘", "Recent Questions"))
	sb.WriteString(c.formatter.List(items))
	return sb.String(), nil
}
