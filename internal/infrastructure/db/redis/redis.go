// Package redis holds the Redis-backed menu cache.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultDialTimeout = 5 * time.Second
	defaultIOTimeout   = 2 * time.Second
)

// Config selects the Redis instance that backs the menu cache.
type Config struct {
	Addr     string
	Password string
	DB       int
	// DialTimeout also bounds the startup ping.
	DialTimeout time.Duration
	// IOTimeout bounds each read and write. A slow cache only costs a
	// store read, so it is kept short.
	IOTimeout time.Duration
}

func (cfg Config) options() *redis.Options {
	dial := cfg.DialTimeout
	if dial <= 0 {
		dial = defaultDialTimeout
	}
	io := cfg.IOTimeout
	if io <= 0 {
		io = defaultIOTimeout
	}
	return &redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dial,
		ReadTimeout:  io,
		WriteTimeout: io,
	}
}

// Connect opens the menu cache connection and pings it once, so a wrong
// address fails at startup instead of on the first menu request.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts := cfg.options()
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("menu cache redis %s db %d: %w", cfg.Addr, cfg.DB, err)
	}
	return client, nil
}
