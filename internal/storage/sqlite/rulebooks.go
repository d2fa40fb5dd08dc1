package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/core"
	"github.com/BigOleEnterprise/pathfinder-discord-bot/pkg/log"
)

type RulebooksRepo struct {
	db *sql.DB
}

func NewRulebooksRepo(db *sql.DB) *RulebooksRepo {
	return &RulebooksRepo{db: db}
}

// SaveChunks stores a batch of embedded chunks in one transaction.
func (r *RulebooksRepo) SaveChunks(ctx context.Context, chunks []core.RulebookChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO rulebook_chunks (source, chunk_index, text, token_count, embedding) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare chunk insert: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		blob, err := serializeVector(chunk.Embedding)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, chunk.Source, chunk.ChunkIndex, chunk.Text, chunk.TokenCount, blob); err != nil {
			return fmt.Errorf("failed to insert chunk %d of %s: %w", chunk.ChunkIndex, chunk.Source, err)
		}
	}

	return tx.Commit()
}

// ClearSource removes every chunk of a source, returning how many were
// deleted. Used before re-ingesting a rulebook.
func (r *RulebooksRepo) ClearSource(ctx context.Context, source string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rulebook_chunks WHERE source = ?`, source)
	if err != nil {
		return 0, fmt.Errorf("failed to clear source %s: %w", source, err)
	}
	return res.RowsAffected()
}

// Search scores every stored chunk against the query vector by cosine
// similarity and returns the top limit results, best first. The corpus is a
// few thousand chunks, so a full scan stays well under command latency.
func (r *RulebooksRepo) Search(ctx context.Context, vector []float32, limit int) ([]core.SearchResult, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, source, chunk_index, text, token_count, embedding, created_at FROM rulebook_chunks`)
	if err != nil {
		return nil, fmt.Errorf("rulebook search failed: %w", err)
	}
	defer rows.Close()

	var results []core.SearchResult
	for rows.Next() {
		var chunk core.RulebookChunk
		var blob []byte
		if err := rows.Scan(&chunk.ID, &chunk.Source, &chunk.ChunkIndex, &chunk.Text, &chunk.TokenCount, &blob, &chunk.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}

		embedding, err := deserializeVector(blob)
		if err != nil {
			return nil, err
		}
		chunk.Embedding = embedding

		results = append(results, core.SearchResult{
			Chunk: chunk,
			Score: cosineSimilarity(vector, embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}

	log.FromCtx(ctx).Debug().Int("results", len(results)).Msg("rulebook search done")
	return results, nil
}
