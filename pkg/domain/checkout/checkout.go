package checkout

import (
	"context"
	"errors"
)

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrInvalidPayload   = errors.New("invalid webhook payload")
)

// Event is a verified checkout notification.
type Event struct {
	ID        string
	Provider  string
	Type      string
	Completed bool
	PlanID    string
	Email     string
}

// EventRepository records processed event ids so a completion is counted once.
type EventRepository interface {
	// MarkProcessed reports true the first time id is seen.
	MarkProcessed(ctx context.Context, id, provider string) (bool, error)
	// Forget removes the marker so a redelivery of id is processed again.
	Forget(ctx context.Context, id string) error
}
