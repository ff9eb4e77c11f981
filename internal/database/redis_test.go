package database

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestConnectRedis(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client, err := ConnectRedis(context.Background(), &redis.Options{Addr: m.Addr()}, 3, time.Millisecond)
	require.NoError(t, err)
	defer client.Close()
	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	got, err := m.Get("k")
	require.NoError(t, err)
	require.Equal(t, "v", got)
}

func TestConnectRedis_GivesUpAfterAttempts(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	addr := m.Addr()
	m.Close()

	start := time.Now()
	_, err = ConnectRedis(context.Background(), &redis.Options{Addr: addr, MaxRetries: -1}, 2, time.Millisecond)
	require.Error(t, err)
	require.Contains(t, err.Error(), addr)
	require.Less(t, time.Since(start), 5*time.Second)
}

func TestConnectRedis_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ConnectRedis(ctx, &redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1}, 5, time.Second)
	require.Error(t, err)
}
