package database

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultDialTimeout = 5 * time.Second

// ConnectRedis opens the stats-cache client and pings it once. The
// service treats redis as optional, so callers decide whether a failure
// here is fatal.
func ConnectRedis(addr, password string, db int, dialTimeout time.Duration, logger *zap.SugaredLogger) (*redis.Client, error) {
	if dialTimeout <= 0 {
		dialTimeout = defaultDialTimeout
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: dialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Errorf("redis ping %s: %v", addr, err)
		_ = rdb.Close()
		return nil, err
	}

	logger.Infow("redis connected", "addr", addr, "db", db)
	return rdb, nil
}
