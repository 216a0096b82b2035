package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"

	"trivia-quiz/internal/domain"
)

const (
	scoresKey  = "leaderboard:scores"
	recordsKey = "leaderboard:records"
)

// Leaderboard ranks score records in a sorted set.
//
//	ZADD leaderboard:scores {score + percentage/1000} {recordID}
//	HSET leaderboard:records {recordID} {json}
//
// The fractional part orders equal scores by percentage; remaining ties are
// broken by timestamp after the records are loaded.
type Leaderboard struct {
	client *redis.Client
}

func NewLeaderboard(client *redis.Client) *Leaderboard {
	return &Leaderboard{client: client}
}

func rankValue(record domain.ScoreRecord) float64 {
	return float64(record.Score) + record.Percentage/1000
}

func (l *Leaderboard) Submit(ctx context.Context, record domain.ScoreRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%w: marshal record: %v", domain.ErrPersistence, err)
	}
	_, err = l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, recordsKey, record.ID, data)
		pipe.ZAdd(ctx, scoresKey, redis.Z{Score: rankValue(record), Member: record.ID})
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

// Top returns the best n records. Members tied with the n-th rank value are all
// loaded so the timestamp tie-break decides who makes the cut.
func (l *Leaderboard) Top(ctx context.Context, n int) ([]domain.ScoreRecord, error) {
	if n <= 0 {
		return []domain.ScoreRecord{}, nil
	}
	cutoff, err := l.client.ZRevRangeWithScores(ctx, scoresKey, int64(n-1), int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	floor := "-inf"
	if len(cutoff) == 1 {
		floor = strconv.FormatFloat(cutoff[0].Score, 'g', -1, 64)
	}
	ids, err := l.client.ZRevRangeByScore(ctx, scoresKey, &redis.ZRangeBy{Min: floor, Max: "+inf"}).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if len(ids) == 0 {
		return []domain.ScoreRecord{}, nil
	}

	raw, err := l.client.HMGet(ctx, recordsKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	records := make([]domain.ScoreRecord, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			continue
		}
		var record domain.ScoreRecord
		if err := json.Unmarshal([]byte(s), &record); err != nil {
			continue
		}
		records = append(records, record)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return domain.Ranks(records[i], records[j])
	})
	if len(records) > n {
		records = records[:n]
	}
	return records, nil
}
