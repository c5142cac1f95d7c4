// Package cache keeps channel lookups that rarely change in Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const uploadsKeyPrefix = "sciencevideodb:uploads:"

type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Uploads maps platform channel ids to their uploads playlist id.
type Uploads struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewUploads connects to Redis and verifies the connection.
func NewUploads(ctx context.Context, cfg Config, logger *slog.Logger) (*Uploads, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	logger.Info("connected to redis", "addr", cfg.Addr, "ttl", cfg.TTL)

	return &Uploads{client: client, ttl: cfg.TTL, logger: logger}, nil
}

// GetUploads returns "" and a nil error on a miss.
func (u *Uploads) GetUploads(ctx context.Context, channelID string) (string, error) {
	id, err := u.client.Get(ctx, uploadsKeyPrefix+channelID).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get uploads playlist: %w", err)
	}
	return id, nil
}

func (u *Uploads) SetUploads(ctx context.Context, channelID, playlistID string) error {
	if err := u.client.Set(ctx, uploadsKeyPrefix+channelID, playlistID, u.ttl).Err(); err != nil {
		return fmt.Errorf("set uploads playlist: %w", err)
	}
	u.logger.Debug("cached uploads playlist", "channel_id", channelID, "playlist_id", playlistID)
	return nil
}

func (u *Uploads) Close() error {
	return u.client.Close()
}
