package repository

import (
	"context"
	"encoding/json"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/internal/usecase"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

func (c *RedisCache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	s, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dst); err != nil {
		// corrupt entry, treat as a miss
		_ = c.rdb.Del(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

func (c *RedisCache) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, ttl).Err()
}

func (c *RedisCache) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// CachedRepo puts a write-through cache in front of another Repository.
// The cache is never the source of truth: cache errors are logged and the
// call falls through to the wrapped repository.
type CachedRepo struct {
	next  usecase.Repository
	cache Cache
	ttl   time.Duration
	log   *logrus.Entry
}

func NewCachedRepo(next usecase.Repository, cache Cache, ttl time.Duration, log *logrus.Entry) *CachedRepo {
	return &CachedRepo{next: next, cache: cache, ttl: ttl, log: log}
}

func cacheKey(id domain.Identity) string { return "resume:" + id.String() }

func (r *CachedRepo) Load(ctx context.Context, id domain.Identity) (*model.Record, error) {
	var rec model.Record
	hit, err := r.cache.GetJSON(ctx, cacheKey(id), &rec)
	if err != nil {
		r.log.WithError(err).WithField("identity", id).Warn("cached_repo: cache read failed")
	}
	if hit {
		return &rec, nil
	}

	loaded, err := r.next.Load(ctx, id)
	if err != nil || loaded == nil {
		return loaded, err
	}
	if err := r.cache.SetJSON(ctx, cacheKey(id), loaded, r.ttl); err != nil {
		r.log.WithError(err).WithField("identity", id).Warn("cached_repo: cache fill failed")
	}
	return loaded, nil
}

func (r *CachedRepo) Upsert(ctx context.Context, rec *model.Record) error {
	id := domain.Identity(rec.UserID)
	if err := r.next.Upsert(ctx, rec); err != nil {
		// the stored row is now unknown; drop the cached copy
		if derr := r.cache.Del(ctx, cacheKey(id)); derr != nil {
			r.log.WithError(derr).WithField("identity", id).Warn("cached_repo: cache evict failed")
		}
		return err
	}
	if err := r.cache.SetJSON(ctx, cacheKey(id), rec, r.ttl); err != nil {
		r.log.WithError(err).WithField("identity", id).Warn("cached_repo: cache write failed")
	}
	return nil
}
