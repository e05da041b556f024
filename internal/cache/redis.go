package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dhoini/invoice-dashboard/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const (
	// Префикс ключей кеша маршрутов
	routeKeyPrefix = "route:"

	// TTL для кэша
	defaultCacheTTL = 15 * time.Minute
)

// RedisCache реализует кеш маршрутов с использованием Redis
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedisCache подключается к Redis и проверяет соединение
func NewRedisCache(ctx context.Context, addr, password string, db int, ttl time.Duration, log *logger.Logger) (*RedisCache, *redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Проверяем соединение с Redis
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		log.Errorw("Failed to connect to Redis", "error", err)
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Infow("Connected to Redis successfully", "addr", addr)
	return NewRedisCacheWithClient(client, ttl, log), client, nil
}

// NewRedisCacheWithClient создает кеш поверх готового клиента
func NewRedisCacheWithClient(client redis.Cmdable, ttl time.Duration, log *logger.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &RedisCache{client: client, ttl: ttl, log: log}
}

func routeKey(path string) string {
	return routeKeyPrefix + path
}

// Get получает закешированный ответ маршрута
func (r *RedisCache) Get(ctx context.Context, path string) ([]byte, error) {
	data, err := r.client.Get(ctx, routeKey(path)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Ключ не найден в кеше
			r.log.Debugw("Route not found in cache", "path", path)
			return nil, nil
		}
		r.log.Errorw("Error getting route from Redis", "error", err, "path", path)
		return nil, fmt.Errorf("failed to get route from cache: %w", err)
	}

	r.log.Debugw("Route retrieved from cache", "path", path)
	return data, nil
}

// Set кеширует ответ маршрута
func (r *RedisCache) Set(ctx context.Context, path string, data []byte) error {
	if err := r.client.Set(ctx, routeKey(path), data, r.ttl).Err(); err != nil {
		r.log.Errorw("Failed to cache route in Redis", "error", err, "path", path)
		return fmt.Errorf("failed to cache route: %w", err)
	}

	r.log.Debugw("Route cached successfully", "path", path)
	return nil
}

// Invalidate удаляет закешированный ответ маршрута
func (r *RedisCache) Invalidate(ctx context.Context, path string) error {
	if err := r.client.Del(ctx, routeKey(path)).Err(); err != nil {
		r.log.Errorw("Failed to invalidate route cache", "error", err, "path", path)
		return fmt.Errorf("failed to invalidate route cache: %w", err)
	}

	r.log.Debugw("Route cache invalidated", "path", path)
	return nil
}
