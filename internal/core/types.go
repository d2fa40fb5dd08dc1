package core

import "time"

const (
	BotName       = "PathfinderBot"
	BotUserAgent  = "PathfinderBot/1.0"
	RepositoryURL = "https://github.com/BigOleEnterprise/pathfinder-discord-bot"
	Version       = "1.0.0"
)

// Claude Sonnet pricing per million tokens, used for cost tracking only.
const (
	inputCostPerMTok  = 3.0
	outputCostPerMTok = 15.0
)

// Answer is a question-answering response with usage metadata.
type Answer struct {
	Content      string
	Model        string
	InputTokens  int
	OutputTokens int
	ResponseTime time.Duration
}

func (a Answer) TotalTokens() int {
	return a.InputTokens + a.OutputTokens
}

// EstimatedCost returns the approximate request cost in USD. Tracked in the
// question log, never shown to users.
func (a Answer) EstimatedCost() float64 {
	return float64(a.InputTokens)/1_000_000*inputCostPerMTok +
		float64(a.OutputTokens)/1_000_000*outputCostPerMTok
}
