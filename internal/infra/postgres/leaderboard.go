package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"trivia-quiz/internal/domain"
)

// Leaderboard stores score records in the quiz_scores table.
type Leaderboard struct {
	pool *pgxpool.Pool
}

func NewLeaderboard(pool *pgxpool.Pool) *Leaderboard {
	return &Leaderboard{pool: pool}
}

func (l *Leaderboard) Submit(ctx context.Context, record domain.ScoreRecord) error {
	_, err := l.pool.Exec(ctx, `
		INSERT INTO quiz_scores (id, username, score, total_questions, percentage, category, difficulty, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		record.ID, record.Player, record.Score, record.Total, record.Percentage,
		record.Category, record.Difficulty, record.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("%w: insert score: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (l *Leaderboard) Top(ctx context.Context, n int) ([]domain.ScoreRecord, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT id, username, score, total_questions, percentage, category, difficulty, created_at
		FROM quiz_scores
		ORDER BY score DESC, percentage DESC, created_at ASC
		LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("%w: query scores: %v", domain.ErrPersistence, err)
	}
	defer rows.Close()

	records := make([]domain.ScoreRecord, 0, n)
	for rows.Next() {
		var r domain.ScoreRecord
		if err := rows.Scan(&r.ID, &r.Player, &r.Score, &r.Total, &r.Percentage, &r.Category, &r.Difficulty, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("%w: scan score: %v", domain.ErrPersistence, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return records, nil
}
