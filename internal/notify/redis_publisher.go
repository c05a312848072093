package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"

	"token-copilot/internal/domain"
)

const (
	// AlertStream is the Redis stream alert configs are published to.
	AlertStream = "copilot:alerts:stream"
	// streamMaxLen caps the stream length, trimmed approximately.
	streamMaxLen = 1000

	connectTimeout = 5 * time.Second
)

// alertMessage is the wire form of a published alert config.
type alertMessage struct {
	TokenSymbol  string  `json:"tokenSymbol"`
	Condition    string  `json:"condition"`
	Direction    string  `json:"direction"`
	Percent      float64 `json:"percent"`
	CurrentPrice float64 `json:"currentPrice"`
	TriggerPrice float64 `json:"triggerPrice"`
	CreatedAt    int64   `json:"createdAt"`
}

// RedisPublisher publishes alert configs to a Redis stream so that external
// watchers (price monitors, notification senders) can pick them up.
type RedisPublisher struct {
	client *redis.Client
	logger *log.Logger
}

var _ AlertPublisher = (*RedisPublisher)(nil)

// NewRedisPublisher connects to Redis and verifies the connection with a ping.
func NewRedisPublisher(addr string, logger *log.Logger) (*RedisPublisher, error) {
	if logger == nil {
		logger = log.New(os.Stderr, "[notify] ", log.LstdFlags)
	}

	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	logger.Printf("connected to Redis at %s", addr)
	return &RedisPublisher{client: client, logger: logger}, nil
}

// PublishAlert appends the alert config to the stream as a JSON payload.
func (p *RedisPublisher) PublishAlert(ctx context.Context, cfg *domain.AlertConfig) error {
	msg := alertMessage{
		TokenSymbol:  cfg.TokenSymbol,
		Condition:    cfg.Condition,
		Direction:    string(cfg.Direction),
		Percent:      cfg.Percent,
		CurrentPrice: cfg.CurrentPrice,
		TriggerPrice: cfg.TriggerPrice,
		CreatedAt:    cfg.CreatedAt,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("error marshaling alert: %w", err)
	}

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: AlertStream,
		ID:     "*",
		Values: map[string]interface{}{"data": string(data)},
		MaxLen: streamMaxLen,
		Approx: true,
	}).Result()
	if err != nil {
		return fmt.Errorf("error publishing to stream: %w", err)
	}

	p.logger.Printf("published alert for %s with ID %s", cfg.TokenSymbol, id)
	return nil
}

// Close closes the Redis connection.
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
