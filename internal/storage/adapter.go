package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"carrental-portal/internal/logger"
)

// Adapter is the only way the rest of the portal touches a Backend. It
// serializes values as JSON and absorbs every I/O failure: reads of missing
// or corrupt keys yield the empty default and failed writes report false.
// Callers keep their in-memory state either way.
type Adapter struct {
	backend Backend
	quota   int
}

// NewAdapter wraps backend. quotaBytes <= 0 disables the size check.
func NewAdapter(backend Backend, quotaBytes int) *Adapter {
	return &Adapter{backend: backend, quota: quotaBytes}
}

func (a *Adapter) Backend() Backend {
	return a.backend
}

// ReadRaw returns the stored bytes for key. A missing key is nil, nil; any
// other backend failure is logged and returned so callers can keep what they
// already hold.
func (a *Adapter) ReadRaw(ctx context.Context, key string) ([]byte, error) {
	logger.StoreCall(a.backend.Name(), "get", key)
	data, err := a.backend.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		logger.Debug("Store key not present", "backend", a.backend.Name(), "key", key)
		return nil, nil
	}
	logger.StoreResult(a.backend.Name(), "get", key, err, "bytes", len(data))
	if err != nil {
		return nil, err
	}
	return data, nil
}

// WriteRaw stores already serialized data and reports whether it persisted
func (a *Adapter) WriteRaw(ctx context.Context, key string, data []byte) bool {
	logger.StoreCall(a.backend.Name(), "set", key, "bytes", len(data))
	var err error
	if a.quota > 0 && len(data) > a.quota {
		err = fmt.Errorf("%w: %d bytes exceeds %d", ErrQuotaExceeded, len(data), a.quota)
	} else {
		err = a.backend.Set(ctx, key, data)
	}
	logger.StoreResult(a.backend.Name(), "set", key, err)
	return err == nil
}

// Write serializes v and stores it under key
func (a *Adapter) Write(ctx context.Context, key string, v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Error("Failed to serialize value", "key", key, "error", err)
		return false
	}
	return a.WriteRaw(ctx, key, data)
}

// Remove deletes key and reports whether the backend accepted it
func (a *Adapter) Remove(ctx context.Context, key string) bool {
	logger.StoreCall(a.backend.Name(), "delete", key)
	err := a.backend.Delete(ctx, key)
	logger.StoreResult(a.backend.Name(), "delete", key, err)
	return err == nil
}

// ReadList reads a JSON array stored under key. Missing, unreadable or
// corrupt values yield an empty, non-nil slice.
func ReadList[T any](ctx context.Context, a *Adapter, key string) []T {
	data, err := a.ReadRaw(ctx, key)
	if err != nil {
		return []T{}
	}
	return DecodeList[T](key, data)
}

// DecodeList parses data as a JSON array of T with the same empty default as ReadList
func DecodeList[T any](key string, data []byte) []T {
	items := []T{}
	if len(data) == 0 {
		return items
	}
	if err := json.Unmarshal(data, &items); err != nil {
		logger.Error("Corrupt stored collection, using empty default", "key", key, "error", err)
		return []T{}
	}
	if items == nil {
		// stored literal null
		items = []T{}
	}
	return items
}

// ReadValue reads a single optional JSON object stored under key
func ReadValue[T any](ctx context.Context, a *Adapter, key string) (*T, bool) {
	data, err := a.ReadRaw(ctx, key)
	if err != nil || len(data) == 0 {
		return nil, false
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		logger.Error("Corrupt stored value, ignoring", "key", key, "error", err)
		return nil, false
	}
	return &v, true
}
