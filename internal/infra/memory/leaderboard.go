package memory

import (
	"context"
	"sort"
	"sync"

	"trivia-quiz/internal/domain"
)

// Leaderboard keeps score records in process; data is lost on restart.
type Leaderboard struct {
	mu      sync.RWMutex
	records []domain.ScoreRecord
}

func NewLeaderboard() *Leaderboard {
	return &Leaderboard{}
}

func (l *Leaderboard) Submit(_ context.Context, record domain.ScoreRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, record)
	return nil
}

func (l *Leaderboard) Top(_ context.Context, n int) ([]domain.ScoreRecord, error) {
	l.mu.RLock()
	sorted := make([]domain.ScoreRecord, len(l.records))
	copy(sorted, l.records)
	l.mu.RUnlock()

	sort.SliceStable(sorted, func(i, j int) bool {
		return domain.Ranks(sorted[i], sorted[j])
	})
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted, nil
}
