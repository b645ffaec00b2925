package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

// ValkeyLimiter enforces a fixed one minute window shared by every replica.
type ValkeyLimiter struct {
	client valkey.Client
	prefix string
	limit  int64
	window time.Duration
	now    func() time.Time
}

// NewValkeyLimiter constructs a limiter allowing requestsPerMinute per key.
func NewValkeyLimiter(client valkey.Client, prefix string, requestsPerMinute int) *ValkeyLimiter {
	if prefix == "" {
		prefix = "outfit:ratelimit"
	}
	return &ValkeyLimiter{
		client: client,
		prefix: prefix,
		limit:  int64(requestsPerMinute),
		window: time.Minute,
		now:    time.Now,
	}
}

// Allow implements Limiter.
func (l *ValkeyLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.windowKey(key)
	count, err := l.client.Do(ctx, l.client.B().Incr().Key(k).Build()).AsInt64()
	if err != nil {
		return false, err
	}
	if count == 1 {
		seconds := int64(l.window / time.Second)
		if err := l.client.Do(ctx, l.client.B().Expire().Key(k).Seconds(seconds).Build()).Error(); err != nil {
			return false, err
		}
	}
	return count <= l.limit, nil
}

func (l *ValkeyLimiter) windowKey(key string) string {
	bucket := l.now().Unix() / int64(l.window/time.Second)
	return fmt.Sprintf("%s:%s:%d", l.prefix, key, bucket)
}

var _ Limiter = (*ValkeyLimiter)(nil)
