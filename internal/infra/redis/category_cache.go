package redis

import (
	"context"
	"math/rand"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"trivia-quiz/internal/domain"
)

// CategoryLoader fetches the category list from the content provider.
type CategoryLoader interface {
	Categories(ctx context.Context) ([]domain.Category, error)
}

// CategoryCache caches provider categories in Redis and falls back to a loader on cache miss.
// Categories are stored as: HSET quiz:categories {categoryID} {name}
type CategoryCache struct {
	client *redis.Client
	loader CategoryLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewCategoryCache(client *redis.Client, loader CategoryLoader, ttl time.Duration) *CategoryCache {
	return &CategoryCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

const categoriesKey = "quiz:categories"

func (c *CategoryCache) Categories(ctx context.Context) ([]domain.Category, error) {
	cached, err := c.client.HGetAll(ctx, categoriesKey).Result()
	if err == nil && len(cached) > 0 {
		return buildCategoriesFromCache(cached), nil
	}

	result, err, _ := c.sf.Do(categoriesKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		cached, err := c.client.HGetAll(ctx, categoriesKey).Result()
		if err == nil && len(cached) > 0 {
			return buildCategoriesFromCache(cached), nil
		}

		cats, err := c.loader.Categories(ctx)
		if err != nil {
			return nil, err
		}

		ttl := c.ttlWithJitter()
		pipe := c.client.Pipeline()
		for _, cat := range cats {
			pipe.HSet(ctx, categoriesKey, strconv.Itoa(cat.ID), cat.Name)
		}
		if ttl > 0 {
			pipe.Expire(ctx, categoriesKey, ttl)
		}
		_, _ = pipe.Exec(ctx)

		return cats, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Category), nil
}

func buildCategoriesFromCache(cached map[string]string) []domain.Category {
	cats := make([]domain.Category, 0, len(cached))
	for rawID, name := range cached {
		id, err := strconv.Atoi(rawID)
		if err != nil {
			continue
		}
		cats = append(cats, domain.Category{ID: id, Name: name})
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].ID < cats[j].ID })
	return cats
}

func (c *CategoryCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
