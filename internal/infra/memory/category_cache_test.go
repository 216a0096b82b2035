package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"trivia-quiz/internal/domain"
)

func TestCategoryCacheCaches(t *testing.T) {
	loader := &countingLoader{
		CategoryLoader: NewStaticCategoryLoader(sampleCategories()),
	}
	cache := NewCategoryCache(loader, time.Minute)

	if _, err := cache.Categories(context.Background()); err != nil {
		t.Fatalf("categories: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	cats, err := cache.Categories(context.Background())
	if err != nil {
		t.Fatalf("categories 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
	if len(cats) != 2 || cats[1].Name != "Science & Nature" {
		t.Fatalf("unexpected categories %+v", cats)
	}
}

func TestCategoryCacheExpires(t *testing.T) {
	loader := &countingLoader{
		CategoryLoader: NewStaticCategoryLoader(sampleCategories()),
	}
	cache := NewCategoryCache(loader, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.clock = func() time.Time { return now }

	_, _ = cache.Categories(context.Background())
	now = now.Add(2 * time.Minute)
	_, _ = cache.Categories(context.Background())

	if loader.calls != 2 {
		t.Fatalf("expected reload after expiry, loader calls %d", loader.calls)
	}
}

func TestCategoryCacheDoesNotCacheErrors(t *testing.T) {
	loader := &failingLoader{}
	cache := NewCategoryCache(loader, time.Minute)

	if _, err := cache.Categories(context.Background()); !errors.Is(err, domain.ErrContentFetch) {
		t.Fatalf("expected content fetch error, got %v", err)
	}
	if _, err := cache.Categories(context.Background()); err == nil {
		t.Fatalf("expected error again")
	}
	if loader.calls != 2 {
		t.Fatalf("expected loader retried, got %d", loader.calls)
	}
}

type countingLoader struct {
	CategoryLoader
	calls int
}

func (l *countingLoader) Categories(ctx context.Context) ([]domain.Category, error) {
	l.calls++
	return l.CategoryLoader.Categories(ctx)
}

type failingLoader struct {
	calls int
}

func (l *failingLoader) Categories(context.Context) ([]domain.Category, error) {
	l.calls++
	return nil, domain.ErrContentFetch
}

func sampleCategories() []domain.Category {
	return []domain.Category{
		{ID: 9, Name: "General Knowledge"},
		{ID: 17, Name: "Science & Nature"},
	}
}
