package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisLedgerKey = "blog-collector:published"

// RedisLedger keeps the ledger in a Redis hash keyed by source URL. Useful
// when several deployments of the pipeline share one publication history.
type RedisLedger struct {
	client *redis.Client
	logger *zap.Logger
}

type RedisLedgerConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func NewRedisLedger(ctx context.Context, cfg RedisLedgerConfig, logger *zap.Logger) (*RedisLedger, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis ledger connected",
		zap.String("addr", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		zap.Int("db", cfg.DB))

	return &RedisLedger{
		client: client,
		logger: logger,
	}, nil
}

func (l *RedisLedger) Contains(ctx context.Context, url string) (bool, error) {
	exists, err := l.client.HExists(ctx, redisLedgerKey, url).Result()
	if err != nil {
		return false, fmt.Errorf("ledger lookup failed: %w", err)
	}
	return exists, nil
}

func (l *RedisLedger) Add(ctx context.Context, entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode ledger entry: %w", err)
	}

	if err := l.client.HSet(ctx, redisLedgerKey, entry.SourceURL, data).Err(); err != nil {
		return fmt.Errorf("ledger write failed: %w", err)
	}
	return nil
}

func (l *RedisLedger) Len(ctx context.Context) (int, error) {
	n, err := l.client.HLen(ctx, redisLedgerKey).Result()
	if err != nil {
		return 0, fmt.Errorf("ledger size lookup failed: %w", err)
	}
	return int(n), nil
}

func (l *RedisLedger) Close() error {
	return l.client.Close()
}
