package ratelimit

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go"
)

func TestValkeyLimiterWindowKey(t *testing.T) {
	l := NewValkeyLimiter(nil, "", 10)
	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return clock }

	first := l.windowKey("10.0.0.1")
	require.True(t, strings.HasPrefix(first, "outfit:ratelimit:10.0.0.1:"))

	clock = clock.Add(59 * time.Second)
	require.Equal(t, first, l.windowKey("10.0.0.1"), "same minute shares a bucket")

	clock = clock.Add(time.Second)
	require.NotEqual(t, first, l.windowKey("10.0.0.1"), "next minute starts a new bucket")
	require.NotEqual(t, l.windowKey("10.0.0.1"), l.windowKey("10.0.0.2"))
}

// TestValkeyLimiterAgainstServer needs a reachable server, e.g.
// OUTFIT_TEST_VALKEY_ADDR=127.0.0.1:6379.
func TestValkeyLimiterAgainstServer(t *testing.T) {
	addr := strings.TrimSpace(os.Getenv("OUTFIT_TEST_VALKEY_ADDR"))
	if addr == "" {
		t.Skip("OUTFIT_TEST_VALKEY_ADDR not set")
	}
	client, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{addr}})
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	l := NewValkeyLimiter(client, "outfit:test:"+uuid.NewString(), 2)
	clock := time.Now()
	l.now = func() time.Time { return clock }
	key := l.windowKey("10.0.0.1")
	defer client.Do(ctx, client.B().Del().Key(key).Build())

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		require.True(t, ok, "request %d is within the limit", i+1)
	}
	ttl, err := client.Do(ctx, client.B().Ttl().Key(key).Build()).AsInt64()
	require.NoError(t, err)
	require.Greater(t, ttl, int64(0))
	require.LessOrEqual(t, ttl, int64(60))

	ok, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	require.False(t, ok, "third request in the window exceeds the limit")

	ok, err = l.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	require.True(t, ok)
	defer client.Do(ctx, client.B().Del().Key(l.windowKey("10.0.0.2")).Build())
}
