package firestore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trivia-quiz/internal/domain"
)

// Runs against the Firestore emulator only, e.g.
// gcloud emulators firestore start --host-port=localhost:8200
func TestLeaderboardAgainstEmulator(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()

	client, err := Connect(ctx, "trivia-quiz-test", "")
	require.NoError(t, err)
	defer client.Close()

	lb := NewLeaderboard(client, "quiz_scores_"+uuid.NewString())
	now := time.Now()
	require.NoError(t, lb.Submit(ctx, domain.ScoreRecord{ID: uuid.NewString(), Player: "ann", Score: 3, Total: 5, Percentage: 60, Category: "Science & Nature", Difficulty: "easy", Timestamp: now}))
	require.NoError(t, lb.Submit(ctx, domain.ScoreRecord{ID: uuid.NewString(), Player: "bob", Score: 9, Total: 10, Percentage: 90, Category: "Any Category", Difficulty: "any", Timestamp: now}))
	require.NoError(t, lb.Submit(ctx, domain.ScoreRecord{ID: uuid.NewString(), Player: "", Score: 1, Total: 5, Percentage: 20, Category: "", Difficulty: "hard", Timestamp: now}))

	top, err := lb.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "bob", top[0].Player)
	assert.Equal(t, "ann", top[1].Player)
	assert.False(t, top[0].Timestamp.IsZero(), "server timestamp should be set")

	all, err := lb.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Anonymous", all[2].Player)
	assert.Equal(t, "N/A", all[2].Category)
}

func TestLeaderboardTiesAtCutoffAgainstEmulator(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()

	client, err := Connect(ctx, "trivia-quiz-test", "")
	require.NoError(t, err)
	defer client.Close()

	lb := NewLeaderboard(client, "quiz_scores_"+uuid.NewString())
	now := time.Now()
	// Document IDs order "aaa" first, so a cut by ID alone would keep the 60% run.
	require.NoError(t, lb.Submit(ctx, domain.ScoreRecord{ID: "aaa", Player: "partial", Score: 3, Total: 5, Percentage: 60, Timestamp: now}))
	require.NoError(t, lb.Submit(ctx, domain.ScoreRecord{ID: "zzz", Player: "perfect", Score: 3, Total: 3, Percentage: 100, Timestamp: now}))
	require.NoError(t, lb.Submit(ctx, domain.ScoreRecord{ID: "mmm", Player: "leader", Score: 8, Total: 10, Percentage: 80, Timestamp: now}))

	top, err := lb.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "leader", top[0].Player)
	assert.Equal(t, "perfect", top[1].Player)

	top, err = lb.Top(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "leader", top[0].Player)
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, "x", orDefault("x", "y"))
	assert.Equal(t, "y", orDefault("", "y"))
}
