package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jwebster45206/school-maze/pkg/state"
	"github.com/jwebster45206/school-maze/pkg/storage"
	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps the save slot in Redis under gamestate:<slot>.
type RedisStorage struct {
	client *redis.Client
	logger *slog.Logger
	slot   string
}

// Ensure RedisStorage implements Storage interface
var _ storage.Storage = (*RedisStorage)(nil)

// NewRedisStorage connects to a redis:// URL. A bare host:port is accepted
// too.
func NewRedisStorage(redisURL, slot string, logger *slog.Logger) *RedisStorage {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		opts = &redis.Options{Addr: redisURL}
	}
	return NewRedisStorageWithClient(redis.NewClient(opts), slot, logger)
}

func NewRedisStorageWithClient(client *redis.Client, slot string, logger *slog.Logger) *RedisStorage {
	if slot == "" {
		slot = "default"
	}
	return &RedisStorage{
		client: client,
		logger: logger,
		slot:   slot,
	}
}

func (r *RedisStorage) key() string {
	return "gamestate:" + r.slot
}

// Health and lifecycle methods

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Debug("Redis connection closed")
	return nil
}

// WaitForConnection pings until Redis answers or attempts run out.
func (r *RedisStorage) WaitForConnection(ctx context.Context, attempts int, delay time.Duration) error {
	for i := 0; i < attempts; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(delay):
				continue
			}
		}

		r.logger.Debug("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", attempts)
}

// GameState operations

func (r *RedisStorage) SaveGameState(ctx context.Context, gs *state.GameState) error {
	data, err := encodeGameState(gs)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(), data, 0).Err(); err != nil {
		r.logger.Error("Failed to save gamestate", "slot", r.slot, "error", err)
		return fmt.Errorf("failed to save gamestate: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadGameState(ctx context.Context) (*state.GameState, error) {
	data, err := r.client.Get(ctx, r.key()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug("No saved gamestate", "slot", r.slot)
			return nil, nil
		}
		r.logger.Error("Failed to load gamestate", "slot", r.slot, "error", err)
		return nil, fmt.Errorf("failed to load gamestate: %w", err)
	}
	return decodeGameState(r.logger, r.slot, data), nil
}

func (r *RedisStorage) DeleteGameState(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key()).Err(); err != nil {
		r.logger.Error("Failed to delete gamestate", "slot", r.slot, "error", err)
		return fmt.Errorf("failed to delete gamestate: %w", err)
	}
	return nil
}
