package memory

import (
	"context"
	"testing"
	"time"

	"trivia-quiz/internal/domain"
)

func TestLeaderboardOrdersByScore(t *testing.T) {
	ctx := context.Background()
	lb := NewLeaderboard()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	records := []domain.ScoreRecord{
		{ID: "a", Player: "ann", Score: 3, Total: 5, Percentage: 60, Timestamp: base},
		{ID: "b", Player: "bob", Score: 8, Total: 10, Percentage: 80, Timestamp: base},
		{ID: "c", Player: "cy", Score: 3, Total: 3, Percentage: 100, Timestamp: base.Add(time.Minute)},
		{ID: "d", Player: "dee", Score: 3, Total: 5, Percentage: 60, Timestamp: base.Add(-time.Minute)},
	}
	for _, r := range records {
		if err := lb.Submit(ctx, r); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	top, err := lb.Top(ctx, 3)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	want := []string{"b", "c", "d"}
	if len(top) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(top))
	}
	for i, id := range want {
		if top[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s (%+v)", i, id, top[i].ID, top)
		}
	}
}

func TestLeaderboardEmpty(t *testing.T) {
	top, err := NewLeaderboard().Top(context.Background(), 10)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 0 {
		t.Fatalf("expected empty leaderboard, got %+v", top)
	}
}
