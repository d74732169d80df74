package infra

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis opens the shared Redis connection backing the session cache and
// the notification job queue. Fails fast: a backend that can't reach Redis
// would re-validate every session against the remote sheet on every request.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}
