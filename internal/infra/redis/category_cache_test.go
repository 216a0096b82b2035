package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"

	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/infra/memory"
)

func TestCategoryCacheCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &countingLoader{
		CategoryLoader: memory.NewStaticCategoryLoader([]domain.Category{
			{ID: 17, Name: "Science & Nature"},
			{ID: 9, Name: "General Knowledge"},
		}),
	}
	cache := NewCategoryCache(newClient(mr), loader, time.Minute)

	if _, err := cache.Categories(context.Background()); err != nil {
		t.Fatalf("categories: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if got := mr.HGet("quiz:categories", "17"); got != "Science & Nature" {
		t.Fatalf("expected category cached in hash, got %q", got)
	}

	// Second call should hit cache, loader not incremented.
	cats, _ := cache.Categories(context.Background())
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if len(cats) != 2 || cats[0].ID != 9 {
		t.Fatalf("expected categories sorted by id, got %+v", cats)
	}
}

type countingLoader struct {
	memory.CategoryLoader
	calls int
}

func (l *countingLoader) Categories(ctx context.Context) ([]domain.Category, error) {
	l.calls++
	return l.CategoryLoader.Categories(ctx)
}
