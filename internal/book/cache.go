package book

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"bookstore-be/internal/logger"
	"bookstore-be/internal/metrics"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "book:"

// cachedRepository is a read-through Redis cache in front of Repository.
// Redis failures are logged and fall through to the wrapped store.
type cachedRepository struct {
	Repository
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
}

func NewCachedRepository(repo Repository, client *redis.Client, ttl time.Duration) Repository {
	return &cachedRepository{Repository: repo, client: client, ttl: ttl}
}

func cacheKey(id string) string { return cacheKeyPrefix + id }

func (c *cachedRepository) GetByID(ctx context.Context, id string) (Book, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "cache"),
		zap.String("method", "GetByID"),
		zap.String("book_id", id),
	)

	raw, err := c.client.Get(ctx, cacheKey(id)).Bytes()
	switch {
	case err == nil:
		var b Book
		if jerr := json.Unmarshal(raw, &b); jerr == nil {
			metrics.RecordBookCache("hit")
			return b, nil
		}
		log.Warn("dropping undecodable cache entry")
		metrics.RecordBookCache("error")
	case errors.Is(err, redis.Nil):
		metrics.RecordBookCache("miss")
	default:
		log.Warn("cache read failed", zap.Error(err))
		metrics.RecordBookCache("error")
	}

	b, err := c.Repository.GetByID(ctx, id)
	if err != nil {
		return Book{}, err
	}
	c.store(ctx, b)
	return b, nil
}

func (c *cachedRepository) GetByIDs(ctx context.Context, ids []string) (map[string]Book, error) {
	if len(ids) == 0 {
		return map[string]Book{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = cacheKey(id)
	}

	out := make(map[string]Book, len(ids))
	missing := ids

	vals, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		logger.FromCtx(ctx).Warn("cache multi-read failed",
			zap.String("layer", "cache"),
			zap.Error(err),
		)
		metrics.RecordBookCache("error")
	} else {
		missing = make([]string, 0, len(ids))
		for i, v := range vals {
			s, ok := v.(string)
			if !ok {
				missing = append(missing, ids[i])
				continue
			}
			var b Book
			if json.Unmarshal([]byte(s), &b) != nil {
				missing = append(missing, ids[i])
				continue
			}
			out[ids[i]] = b
		}
		for range out {
			metrics.RecordBookCache("hit")
		}
		for range missing {
			metrics.RecordBookCache("miss")
		}
	}

	if len(missing) == 0 {
		return out, nil
	}

	fetched, err := c.Repository.GetByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	for id, b := range fetched {
		out[id] = b
		c.store(ctx, b)
	}
	return out, nil
}

func (c *cachedRepository) Update(ctx context.Context, id string, in UpdateInput) (Book, error) {
	b, err := c.Repository.Update(ctx, id, in)
	c.invalidate(ctx, id)
	return b, err
}

func (c *cachedRepository) Delete(ctx context.Context, id string) error {
	err := c.Repository.Delete(ctx, id)
	c.invalidate(ctx, id)
	return err
}

func (c *cachedRepository) store(ctx context.Context, b Book) {
	payload, err := json.Marshal(b)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(b.ID), payload, c.ttl).Err(); err != nil {
		logger.FromCtx(ctx).Warn("cache write failed",
			zap.String("layer", "cache"),
			zap.String("book_id", b.ID),
			zap.Error(err),
		)
	}
}

func (c *cachedRepository) invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, cacheKey(id)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		logger.FromCtx(ctx).Warn("cache invalidate failed",
			zap.String("layer", "cache"),
			zap.String("book_id", id),
			zap.Error(err),
		)
	}
}
