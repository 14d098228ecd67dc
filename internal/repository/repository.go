package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound         = errors.New("document not found")
	ErrInvalidID        = errors.New("invalid object id")
	ErrInvalidSortField = errors.New("invalid sort field")
)

// ParseObjectID validates a caller-supplied hex id before it reaches the
// store. Malformed ids fail here, never as a driver error.
func ParseObjectID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}

// withTimeout bounds a single store round-trip.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
