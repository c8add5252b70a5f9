package storage

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// An unreachable server exercises the failure path: nothing is surfaced to
// the caller beyond the empty default and a false write.
func TestRedisBackend_Unreachable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	backend := NewRedisBackend(rdb, "test:")
	a := NewAdapter(backend, 0)
	ctx := context.Background()

	_, err := backend.Get(ctx, KeyVehicles)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrKeyNotFound)

	assert.Empty(t, ReadList[record](ctx, a, KeyVehicles))
	assert.False(t, a.Write(ctx, KeyVehicles, []record{{ID: "1"}}))
	assert.Equal(t, TypeRedis, backend.Name())
}
