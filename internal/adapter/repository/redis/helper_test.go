package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"

	redisinfra "github.com/iho/escrowledger/internal/infrastructure/redis"
)

// newTestRedisClient connects to a miniredis server the way the server binary
// connects to REDIS_URL.
func newTestRedisClient(t *testing.T) (*redislib.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := redisinfra.NewClient(context.Background(), "redis://"+mr.Addr()+"/0")
	if err != nil {
		t.Fatalf("failed to connect to miniredis: %v", err)
	}

	return client, mr
}
