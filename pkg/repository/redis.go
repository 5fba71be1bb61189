package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/example/adminshop/pkg/config"
	"github.com/go-redis/redis/v8"
)

// List cache keys, one per resource. The values are JSON-serialized arrays
// (for products, the {items,total} envelope), invalidated wholesale on any
// mutation of the resource.
const (
	ProductsKey   = "admin_products"
	CategoriesKey = "admin_categories"
	OrdersKey     = "admin_orders"
	MessagesKey   = "admin_messages"
)

type RedisRepository struct {
	client  *redis.Client
	config  *config.RedisConfig
	listTTL time.Duration
}

func NewRedisRepository(cfg *config.RedisConfig) *RedisRepository {
	ttl := cfg.ListTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisRepository{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
			PoolSize: cfg.PoolSize,
		}),
		config:  cfg,
		listTTL: ttl,
	}
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRepository) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisRepository) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, expiration).Err()
}

func (r *RedisRepository) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

// CacheList stores a resource listing under its key with the configured TTL.
// The cache is read-through only: mutations never write it, they drop it.
func (r *RedisRepository) CacheList(ctx context.Context, key string, value interface{}) error {
	return r.SetJSON(ctx, key, value, r.listTTL)
}

// GetList loads a cached listing. A redis.Nil error means a cache miss and
// the caller falls through to the store.
func (r *RedisRepository) GetList(ctx context.Context, key string, dest interface{}) error {
	return r.GetJSON(ctx, key, dest)
}

// Invalidate drops a resource's cached listing after a successful mutation,
// so the next read refetches from the store.
func (r *RedisRepository) Invalidate(ctx context.Context, keys ...string) error {
	return r.Del(ctx, keys...)
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}
