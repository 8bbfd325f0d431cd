package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wonpil/sentrev/pkg/config"
)

// 배치 파이프라인용 접속 한도. 동시 호출자는 스케줄러 잡과 API 서버뿐이다.
const (
	poolSize    = 4
	dialTimeout = 3 * time.Second
	readTimeout = 2 * time.Second
	pingTimeout = 3 * time.Second
)

// Client wraps the Redis client with additional utilities.
// Redis 없이도 동작해야 하므로 비활성 상태를 일급으로 취급한다.
// ⭐ SSOT: Redis 연결은 여기서만 관리
type Client struct {
	rdb     *redis.Client
	enabled bool
}

// New creates a new Redis client.
// Redis.Enabled=false면 모든 호출이 no-op인 클라이언트를 돌려준다.
func New(cfg *config.Config) (*Client, error) {
	if !cfg.Redis.Enabled {
		return &Client{enabled: false}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		PoolSize:    poolSize,
		DialTimeout: dialTimeout,
		ReadTimeout: readTimeout,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &Client{
		rdb:     rdb,
		enabled: true,
	}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	if c.rdb != nil {
		return c.rdb.Close()
	}
	return nil
}

// Enabled returns whether Redis is enabled
func (c *Client) Enabled() bool {
	return c.enabled
}

// Redis returns the underlying redis client for advanced usage
func (c *Client) Redis() *redis.Client {
	return c.rdb
}
