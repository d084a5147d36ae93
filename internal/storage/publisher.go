package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"emergencyrelay/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// Publisher mirrors broadcast events to consumers outside the relay.
type Publisher interface {
	Publish(ctx context.Context, evt models.Outbound) error
	Close() error
}

// RedisPublisher publishes every event as JSON on one Redis channel.
type RedisPublisher struct {
	Redis   *redis.Client
	Channel string
}

// NewRedisPublisher connects and pings Redis.
func NewRedisPublisher(ctx context.Context, addr, password string, db int, channel string) (*RedisPublisher, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect Redis: %w", err)
	}
	return &RedisPublisher{Redis: rdb, Channel: channel}, nil
}

func (p *RedisPublisher) Publish(ctx context.Context, evt models.Outbound) error {
	msgBytes, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return p.Redis.Publish(ctx, p.Channel, string(msgBytes)).Err()
}

func (p *RedisPublisher) Close() error {
	return p.Redis.Close()
}
