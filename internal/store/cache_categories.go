package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/escrow-api/internal/config"
	"github.com/MKhiriev/escrow-api/internal/logger"
	"github.com/MKhiriev/escrow-api/models"
)

const categoriesCacheKey = "escrow:jobs:categories"

// CategoryCache keeps the category counts between job writes.
// A miss is reported with ok == false and a nil error.
type CategoryCache interface {
	Categories(ctx context.Context) (categories []models.CategoryCount, ok bool, err error)
	StoreCategories(ctx context.Context, categories []models.CategoryCount) error
	Invalidate(ctx context.Context) error
}

// NewConnectRedis creates a go-redis client and verifies it with a ping.
func NewConnectRedis(ctx context.Context, cfg config.Redis, log *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		log.Err(err).Str("func", "NewConnectRedis").Str("addr", cfg.Address).Msg("error connecting redis (ping)")
		return nil, fmt.Errorf("error connecting redis: %w", err)
	}
	log.Info().Str("func", "NewConnectRedis").Str("addr", cfg.Address).Msg("connected to redis successfully")

	return client, nil
}

type redisCategoryCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisCategoryCache(client redis.Cmdable, ttl time.Duration) CategoryCache {
	return &redisCategoryCache{client: client, ttl: ttl}
}

func (c *redisCategoryCache) Categories(ctx context.Context) ([]models.CategoryCount, bool, error) {
	raw, err := c.client.Get(ctx, categoriesCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cached categories: %w", err)
	}

	var categories []models.CategoryCount
	if err = json.Unmarshal(raw, &categories); err != nil {
		return nil, false, fmt.Errorf("decoding cached categories: %w", err)
	}
	return categories, true, nil
}

func (c *redisCategoryCache) StoreCategories(ctx context.Context, categories []models.CategoryCount) error {
	raw, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("encoding categories: %w", err)
	}
	if err = c.client.Set(ctx, categoriesCacheKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("caching categories: %w", err)
	}
	return nil
}

func (c *redisCategoryCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, categoriesCacheKey).Err(); err != nil {
		return fmt.Errorf("invalidating categories: %w", err)
	}
	return nil
}

// cachedJobRepository serves ListCategories from a CategoryCache and drops the
// cached value after every successful write. Cache failures are logged and
// the database answer is used.
type cachedJobRepository struct {
	JobRepository
	cache CategoryCache
}

func newCachedJobRepository(jobs JobRepository, cache CategoryCache) JobRepository {
	return &cachedJobRepository{JobRepository: jobs, cache: cache}
}

func (r *cachedJobRepository) ListCategories(ctx context.Context) ([]models.CategoryCount, error) {
	log := logger.FromContext(ctx)

	categories, ok, err := r.cache.Categories(ctx)
	if err != nil {
		log.Warn().Err(err).Str("func", "*cachedJobRepository.ListCategories").Msg("category cache unavailable")
	}
	if ok {
		return categories, nil
	}

	categories, err = r.JobRepository.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	if err = r.cache.StoreCategories(ctx, categories); err != nil {
		log.Warn().Err(err).Str("func", "*cachedJobRepository.ListCategories").Msg("categories were not cached")
	}
	return categories, nil
}

func (r *cachedJobRepository) CreateJob(ctx context.Context, job models.Job) (models.Job, error) {
	created, err := r.JobRepository.CreateJob(ctx, job)
	if err == nil {
		r.invalidate(ctx)
	}
	return created, err
}

func (r *cachedJobRepository) UpdateJob(ctx context.Context, id int64, update models.JobUpdate) (models.Job, error) {
	updated, err := r.JobRepository.UpdateJob(ctx, id, update)
	if err == nil && update.Category != nil {
		r.invalidate(ctx)
	}
	return updated, err
}

func (r *cachedJobRepository) DeleteJob(ctx context.Context, id int64) error {
	err := r.JobRepository.DeleteJob(ctx, id)
	if err == nil {
		r.invalidate(ctx)
	}
	return err
}

func (r *cachedJobRepository) invalidate(ctx context.Context) {
	if err := r.cache.Invalidate(ctx); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "*cachedJobRepository.invalidate").Msg("stale categories may be served")
	}
}
