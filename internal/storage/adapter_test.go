package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID       string   `json:"id"`
	Make     string   `json:"make"`
	Features []string `json:"features"`
	Rate     int64    `json:"rate"`
}

type failingBackend struct {
	*MemoryBackend
	failSet bool
	failGet bool
}

func (f *failingBackend) Get(ctx context.Context, key string) ([]byte, error) {
	if f.failGet {
		return nil, errors.New("disk unavailable")
	}
	return f.MemoryBackend.Get(ctx, key)
}

func (f *failingBackend) Set(ctx context.Context, key string, value []byte) error {
	if f.failSet {
		return errors.New("disk full")
	}
	return f.MemoryBackend.Set(ctx, key, value)
}

func TestAdapter_RoundTrip(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(NewMemoryBackend(), 0)

	in := []record{
		{ID: "1", Make: "Toyota", Features: []string{"AC", "GPS"}, Rate: 15000},
		{ID: "2", Make: "Honda", Features: []string{}, Rate: 12000},
	}
	require.True(t, a.Write(ctx, KeyVehicles, in))

	out := ReadList[record](ctx, a, KeyVehicles)
	assert.Equal(t, in, out)
}

func TestAdapter_ReadDefaults(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	a := NewAdapter(backend, 0)

	t.Run("Missing key", func(t *testing.T) {
		out := ReadList[record](ctx, a, KeyRentalRequests)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	})

	t.Run("Corrupt value", func(t *testing.T) {
		require.NoError(t, backend.Set(ctx, KeyVehicles, []byte("{not json")))
		out := ReadList[record](ctx, a, KeyVehicles)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	})

	t.Run("Null value", func(t *testing.T) {
		require.NoError(t, backend.Set(ctx, KeyVehicles, []byte("null")))
		out := ReadList[record](ctx, a, KeyVehicles)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	})

	t.Run("Backend error", func(t *testing.T) {
		fa := NewAdapter(&failingBackend{MemoryBackend: NewMemoryBackend(), failGet: true}, 0)
		data, err := fa.ReadRaw(ctx, KeyVehicles)
		assert.Error(t, err)
		assert.Nil(t, data)
		assert.Empty(t, ReadList[record](ctx, fa, KeyVehicles))
	})
}

func TestAdapter_ReadValue(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(NewMemoryBackend(), 0)

	_, ok := ReadValue[record](ctx, a, KeyCurrentUser)
	assert.False(t, ok)

	require.True(t, a.Write(ctx, KeyCurrentUser, record{ID: "u1"}))
	v, ok := ReadValue[record](ctx, a, KeyCurrentUser)
	require.True(t, ok)
	assert.Equal(t, "u1", v.ID)

	require.True(t, a.Remove(ctx, KeyCurrentUser))
	_, ok = ReadValue[record](ctx, a, KeyCurrentUser)
	assert.False(t, ok)
}

func TestAdapter_WriteFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	backend := &failingBackend{MemoryBackend: NewMemoryBackend()}
	a := NewAdapter(backend, 0)

	require.True(t, a.Write(ctx, KeyVehicles, []record{{ID: "1"}}))

	backend.failSet = true
	assert.False(t, a.Write(ctx, KeyVehicles, []record{{ID: "1"}, {ID: "2"}}))

	// previous value is untouched
	out := ReadList[record](ctx, a, KeyVehicles)
	assert.Len(t, out, 1)
}

func TestAdapter_Quota(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(NewMemoryBackend(), 32)

	assert.True(t, a.Write(ctx, KeyVehicles, []record{}))
	assert.False(t, a.Write(ctx, KeyVehicles, []record{{ID: "1", Make: "A rather long make name that overflows"}}))
	data, err := a.ReadRaw(ctx, KeyVehicles)
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), data)
}
