package core

import (
	"context"
	"time"
)

type QuestionRepository interface {
	SaveQuestionLog(ctx context.Context, log QuestionLog) error
	GetRecentQuestions(ctx context.Context, limit int) ([]QuestionLog, error)
}

type RulebookRepository interface {
	SaveChunks(ctx context.Context, chunks []RulebookChunk) error
	ClearSource(ctx context.Context, source string) (int64, error)
	Search(ctx context.Context, vector []float32, limit int) ([]SearchResult, error)
}

// QuestionLog records one answered question for eval tracking.
type QuestionLog struct {
	ID             int64
	UserID         int64
	Question       string
	Response       string
	Model          string
	InputTokens    int
	OutputTokens   int
	TotalTokens    int
	EstimatedCost  float64
	ResponseTimeMS int64
	CreatedAt      time.Time
}

// RulebookChunk is one embedded slice of a rulebook document.
type RulebookChunk struct {
	ID         int64
	Source     string
	ChunkIndex int
	Text       string
	TokenCount int
	Embedding  []float32
	CreatedAt  time.Time
}

// SearchResult pairs a chunk with its similarity score in [0, 1]; higher is
// more relevant.
type SearchResult struct {
	Chunk RulebookChunk
	Score float64
}
