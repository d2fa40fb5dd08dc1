package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/core"
	"github.com/BigOleEnterprise/pathfinder-discord-bot/pkg/log"
)

type QuestionsRepo struct {
	db *sql.DB
}

func NewQuestionsRepo(db *sql.DB) *QuestionsRepo {
	return &QuestionsRepo{db: db}
}

func (r *QuestionsRepo) SaveQuestionLog(ctx context.Context, q core.QuestionLog) error {
	query := `INSERT INTO questions
		(user_id, question, response, model, input_tokens, output_tokens, total_tokens, estimated_cost, response_time_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		q.UserID, q.Question, q.Response, q.Model,
		q.InputTokens, q.OutputTokens, q.TotalTokens,
		q.EstimatedCost, q.ResponseTimeMS,
	)
	if err != nil {
		return fmt.Errorf("failed to insert question log: %w", err)
	}
	return nil
}

func (r *QuestionsRepo) GetRecentQuestions(ctx context.Context, limit int) ([]core.QuestionLog, error) {
	query := `SELECT id, user_id, question, response, model, input_tokens, output_tokens,
		total_tokens, estimated_cost, response_time_ms, created_at
		FROM questions ORDER BY id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	var logs []core.QuestionLog
	for rows.Next() {
		var q core.QuestionLog
		if err := rows.Scan(
			&q.ID, &q.UserID, &q.Question, &q.Response, &q.Model,
			&q.InputTokens, &q.OutputTokens, &q.TotalTokens,
			&q.EstimatedCost, &q.ResponseTimeMS, &q.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan question log: %w", err)
		}
		logs = append(logs, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.FromCtx(ctx).Debug().Int("count", len(logs)).Msg("loaded recent questions")
	return logs, nil
}
