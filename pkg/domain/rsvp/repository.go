package rsvp

import "context"

// Repository stores the RSVP counter.
type Repository interface {
	Count(ctx context.Context) (int64, error)
	Increment(ctx context.Context) (int64, error)
}
