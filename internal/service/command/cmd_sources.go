package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/service/ask"
)

// maxExcerptLen keeps each excerpt readable inside one chat message.
const maxExcerptLen = 600

type SourcesCommand struct {
	svc       *ask.Service
	formatter *ResponseFormatter
}

func NewSourcesCommand(svc *ask.Service) *SourcesCommand {
	return &SourcesCommand{
		svc:       svc,
		formatter: NewResponseFormatter(),
	}
}

func (c *SourcesCommand) Name() string {
	return "sources"
}

func (c *SourcesCommand) Description() string {
	return "Show the rulebook excerpts behind your last answer"
}

func (c *SourcesCommand) Execute(ctx context.Context, actorID int64, args []string) (string, error) {
	sources := c.svc.LastSources(actorID)
	if len(sources) == 0 {
		return "No rulebook sources were used for your last answer.", nil
	}

	var sb strings.Builder
	sb.WriteString(c.formatter.Title("📚", "Rulebook Excerpts Used"))

	for i, res := range sources {
		text := res.Chunk.Text
		if len(text) > maxExcerptLen {
			text = text[:maxExcerptLen] + "..."
		}
		sb.WriteString(fmt.Sprintf(
			"**Source %d** - %s (Chunk #%d) - Relevance: %.0f%%\n```\n%s\n```\n",
			i+1, prettySourceName(res.Chunk.Source), res.Chunk.ChunkIndex, res.Score*100, text,
		))
	}

	return sb.String(), nil
}

func prettySourceName(source string) string {
	words := strings.Split(strings.ReplaceAll(source, "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
