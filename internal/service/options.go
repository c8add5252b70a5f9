package service

import (
	"time"

	"github.com/google/uuid"
)

// Option overrides the clock or id source of a service
type Option func(*deps)

type deps struct {
	now   func() time.Time
	newID func() string
}

func WithClock(now func() time.Time) Option {
	return func(d *deps) { d.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(d *deps) { d.newID = newID }
}

func newDeps(opts []Option) deps {
	d := deps{
		now:   func() time.Time { return time.Now().UTC() },
		newID: newTimeOrderedID,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// newTimeOrderedID returns a UUIDv7 so ids sort by creation time
func newTimeOrderedID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
