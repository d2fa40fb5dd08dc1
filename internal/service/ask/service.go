package ask

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/core"
	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/ratelimit"
	"github.com/BigOleEnterprise/pathfinder-discord-bot/pkg/log"
)

const (
	minQuestionLen = 10
	maxQuestionLen = 500
)

var (
	ErrQuestionTooShort = errors.New("please provide a more detailed question (at least 10 characters)")
	ErrQuestionTooLong  = errors.New("question is too long, please keep it under 500 characters")
)

// RateLimitedError tells the user when a slot frees up.
type RateLimitedError struct {
	Reset time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limit exceeded, try again in %s", e.Reset.Round(time.Second))
}

// Response is an answered question plus the excerpts that grounded it.
type Response struct {
	Answer  core.Answer
	Sources []core.SearchResult
}

// Service runs the /ask pipeline: admission check, question validation,
// embedding, rulebook retrieval, Claude answer, question logging.
type Service struct {
	limiter     *ratelimit.Limiter
	qa          core.QAProvider
	embedder    core.Embedder
	questions   core.QuestionRepository
	rulebooks   core.RulebookRepository
	searchLimit int

	mu          sync.Mutex
	lastSources map[int64][]core.SearchResult
}

func New(
	limiter *ratelimit.Limiter,
	qa core.QAProvider,
	embedder core.Embedder,
	questions core.QuestionRepository,
	rulebooks core.RulebookRepository,
	searchLimit int,
) *Service {
	return &Service{
		limiter:     limiter,
		qa:          qa,
		embedder:    embedder,
		questions:   questions,
		rulebooks:   rulebooks,
		searchLimit: searchLimit,
		lastSources: make(map[int64][]core.SearchResult),
	}
}

// Ask answers a rules question for the user. Validation and rate-limit
// failures come back as typed errors meant for the user, not as system
// faults.
func (s *Service) Ask(ctx context.Context, userID int64, question string) (*Response, error) {
	logger := log.FromCtx(ctx)

	if s.limiter.IsLimited(userID) {
		reset := s.limiter.TimeUntilReset(userID)
		logger.Warn().Int64("user_id", userID).Dur("reset", reset).Msg("ask rate limit exceeded")
		return nil, &RateLimitedError{Reset: reset}
	}

	question = strings.TrimSpace(question)
	if len(question) < minQuestionLen {
		return nil, ErrQuestionTooShort
	}
	if len(question) > maxQuestionLen {
		return nil, ErrQuestionTooLong
	}

	// Record before the expensive calls so parallel requests cannot slip
	// past the limit.
	s.limiter.Record(userID)

	vector, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	sources, err := s.rulebooks.Search(ctx, vector, s.searchLimit)
	if err != nil {
		return nil, fmt.Errorf("search rulebooks: %w", err)
	}

	rulebookContext := buildContext(sources)
	if rulebookContext != "" {
		logger.Info().Int("excerpts", len(sources)).Msg("found relevant rulebook chunks")
	}

	answer, err := s.qa.Ask(ctx, question, rulebookContext)
	if err != nil {
		return nil, fmt.Errorf("ask provider: %w", err)
	}

	if err := s.questions.SaveQuestionLog(ctx, core.QuestionLog{
		UserID:         userID,
		Question:       question,
		Response:       answer.Content,
		Model:          answer.Model,
		InputTokens:    answer.InputTokens,
		OutputTokens:   answer.OutputTokens,
		TotalTokens:    answer.TotalTokens(),
		EstimatedCost:  answer.EstimatedCost(),
		ResponseTimeMS: answer.ResponseTime.Milliseconds(),
	}); err != nil {
		// Eval tracking must not fail the answer the user already paid for.
		logger.Error().Err(err).Msg("failed to save question log")
	}

	s.mu.Lock()
	s.lastSources[userID] = sources
	s.mu.Unlock()

	return &Response{Answer: answer, Sources: sources}, nil
}

// LastSources returns the excerpts behind the user's most recent answer,
// for the /sources follow-up.
func (s *Service) LastSources(userID int64) []core.SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSources[userID]
}

// RecentQuestions exposes the question log for the /recent command.
func (s *Service) RecentQuestions(ctx context.Context, limit int) ([]core.QuestionLog, error) {
	return s.questions.GetRecentQuestions(ctx, limit)
}

// buildContext formats search results into the excerpt block handed to the
// QA provider. Empty when nothing relevant was found.
func buildContext(sources []core.SearchResult) string {
	if len(sources) == 0 {
		return ""
	}

	parts := make([]string, 0, len(sources))
	for i, res := range sources {
		parts = append(parts, fmt.Sprintf(
			"[Excerpt %d from %s - Relevance: %.2f]\n%s",
			i+1, prettySource(res.Chunk.Source), res.Score, res.Chunk.Text,
		))
	}
	return strings.Join(parts, "\n\n---\n\n")
}

// prettySource turns "core_rulebook" into "Core Rulebook".
func prettySource(source string) string {
	words := strings.Split(strings.ReplaceAll(source, "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
