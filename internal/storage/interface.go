package storage

import (
	"context"
	"errors"
)

// Keys of the shared collections. Each value is a JSON document.
const (
	KeyVehicles           = "vehicles"
	KeyRentalRequests     = "rental_requests"
	KeyCarListingRequests = "car_listing_requests"
	KeyCurrentUser        = "current_user"
)

var (
	// ErrKeyNotFound is returned by a Backend when nothing is stored under a key.
	ErrKeyNotFound = errors.New("key not found")
	// ErrQuotaExceeded is returned when a serialized value is larger than the configured quota.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Backend is a durable key-value store shared by every view of the portal.
// Implementations must be safe for concurrent use.
type Backend interface {
	// Get returns the raw value stored under key or ErrKeyNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value stored under key
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Name identifies the backend in logs
	Name() string
}
