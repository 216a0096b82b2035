// Package firestore keeps the leaderboard in a Cloud Firestore collection.
package firestore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"

	"trivia-quiz/internal/domain"
)

const DefaultCollection = "quiz_scores"

// scoreDocument mirrors the document layout written by earlier versions of the app.
type scoreDocument struct {
	Username       string    `firestore:"username"`
	Score          int       `firestore:"score"`
	TotalQuestions int       `firestore:"total_questions"`
	Percentage     float64   `firestore:"percentage"`
	Difficulty     string    `firestore:"difficulty"`
	Category       string    `firestore:"category"`
	Timestamp      time.Time `firestore:"timestamp,serverTimestamp"`
}

// Leaderboard appends one document per completed session.
type Leaderboard struct {
	client     *firestore.Client
	collection string
}

// Connect opens a Firestore client. An empty credentialsFile uses application
// default credentials; FIRESTORE_EMULATOR_HOST is honoured by the client library.
func Connect(ctx context.Context, projectID, credentialsFile string) (*firestore.Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: connect firestore: %v", domain.ErrPersistence, err)
	}
	return client, nil
}

func NewLeaderboard(client *firestore.Client, collection string) *Leaderboard {
	if collection == "" {
		collection = DefaultCollection
	}
	return &Leaderboard{client: client, collection: collection}
}

func (l *Leaderboard) Submit(ctx context.Context, record domain.ScoreRecord) error {
	doc := scoreDocument{
		Username:       record.Player,
		Score:          record.Score,
		TotalQuestions: record.Total,
		Percentage:     record.Percentage,
		Difficulty:     record.Difficulty,
		Category:       record.Category,
	}
	ref := l.client.Collection(l.collection).Doc(record.ID)
	if _, err := ref.Create(ctx, doc); err != nil {
		return fmt.Errorf("%w: save score: %v", domain.ErrPersistence, err)
	}
	return nil
}

// Top returns the best n records. Firestore only orders by score without a
// composite index, so documents tied with the n-th score are fetched as well and
// the full ranking is applied locally before trimming.
func (l *Leaderboard) Top(ctx context.Context, n int) ([]domain.ScoreRecord, error) {
	if n <= 0 {
		return []domain.ScoreRecord{}, nil
	}
	scores := l.client.Collection(l.collection)
	snaps, err := scores.OrderBy("score", firestore.Desc).Limit(n).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("%w: load scores: %v", domain.ErrPersistence, err)
	}
	if len(snaps) == n {
		cutoff, err := snaps[n-1].DataAt("score")
		if err != nil {
			return nil, fmt.Errorf("%w: read cutoff score: %v", domain.ErrPersistence, err)
		}
		snaps, err = scores.Where("score", ">=", cutoff).OrderBy("score", firestore.Desc).Documents(ctx).GetAll()
		if err != nil {
			return nil, fmt.Errorf("%w: load tied scores: %v", domain.ErrPersistence, err)
		}
	}

	records := make([]domain.ScoreRecord, 0, len(snaps))
	for _, snap := range snaps {
		var doc scoreDocument
		if err := snap.DataTo(&doc); err != nil {
			continue
		}
		records = append(records, domain.ScoreRecord{
			ID:         snap.Ref.ID,
			Player:     orDefault(doc.Username, "Anonymous"),
			Score:      doc.Score,
			Total:      doc.TotalQuestions,
			Percentage: doc.Percentage,
			Category:   orDefault(doc.Category, "N/A"),
			Difficulty: orDefault(doc.Difficulty, "N/A"),
			Timestamp:  doc.Timestamp,
		})
	}
	sort.SliceStable(records, func(i, j int) bool {
		return domain.Ranks(records[i], records[j])
	})
	if len(records) > n {
		records = records[:n]
	}
	return records, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
