package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type Options struct {
	Addr     string
	Password string
	DB       int
}

const dialPingTimeout = 5 * time.Second

// OpenRedis connects and pings. The idempotency middleware and the readiness
// probe share the returned client.
func OpenRedis(ctx context.Context, o Options) (*redis.Client, error) {
	r := redis.NewClient(&redis.Options{
		Addr:         o.Addr,
		Password:     o.Password,
		DB:           o.DB,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	ctx, cancel := context.WithTimeout(ctx, dialPingTimeout)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}
