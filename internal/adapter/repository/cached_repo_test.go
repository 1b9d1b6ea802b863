package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/logger"
	"resume-builder/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCache struct {
	data   map[string][]byte
	getErr error
	setErr error
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *memCache) SetJSON(_ context.Context, key string, val any, _ time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *memCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

type memRepo struct {
	rows      map[domain.Identity]*model.Record
	loads     int
	upsertErr error
}

func (r *memRepo) Load(_ context.Context, id domain.Identity) (*model.Record, error) {
	r.loads++
	return r.rows[id], nil
}

func (r *memRepo) Upsert(_ context.Context, rec *model.Record) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.rows[domain.Identity(rec.UserID)] = rec
	return nil
}

func testLog() *logrus.Entry { return logrus.NewEntry(logger.Discard()) }

func sampleRecord(id string) *model.Record {
	return model.NewRecord(domain.Identity(id), domain.ResumeDocument{
		PersonalInfo: domain.PersonalInfo{FullName: "Ada"},
		Skills:       []domain.Skill{{ID: "s1", Name: "Go", Level: domain.LevelExpert}},
	}, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
}

func TestCachedRepoFillsOnMiss(t *testing.T) {
	inner := &memRepo{rows: map[domain.Identity]*model.Record{"u1": sampleRecord("u1")}}
	cache := newMemCache()
	repo := NewCachedRepo(inner, cache, time.Minute, testLog())
	ctx := context.Background()

	rec, err := repo.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", rec.PersonalInfo.FullName)
	assert.Contains(t, cache.data, "resume:u1")

	rec, err = repo.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.loads)
	assert.Equal(t, sampleRecord("u1").Skills, rec.Skills)
	assert.True(t, rec.UpdatedAt.Equal(sampleRecord("u1").UpdatedAt))
}

func TestCachedRepoMissingRecord(t *testing.T) {
	repo := NewCachedRepo(&memRepo{rows: map[domain.Identity]*model.Record{}}, newMemCache(), time.Minute, testLog())

	rec, err := repo.Load(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestCachedRepoFallsThroughOnCacheErrors(t *testing.T) {
	inner := &memRepo{rows: map[domain.Identity]*model.Record{"u1": sampleRecord("u1")}}
	cache := newMemCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	repo := NewCachedRepo(inner, cache, time.Minute, testLog())

	rec, err := repo.Load(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", rec.PersonalInfo.FullName)

	require.NoError(t, repo.Upsert(context.Background(), sampleRecord("u2")))
	assert.Contains(t, inner.rows, domain.Identity("u2"))
}

func TestCachedRepoWriteThrough(t *testing.T) {
	inner := &memRepo{rows: map[domain.Identity]*model.Record{}}
	cache := newMemCache()
	repo := NewCachedRepo(inner, cache, time.Minute, testLog())
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, sampleRecord("u1")))
	assert.Contains(t, cache.data, "resume:u1")

	inner.upsertErr = errors.New("db down")
	err := repo.Upsert(ctx, sampleRecord("u1"))
	assert.Error(t, err)
	assert.NotContains(t, cache.data, "resume:u1")
}
