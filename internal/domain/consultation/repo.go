package consultation

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a record. An unknown user yields a NotFound error.
	Create(ctx context.Context, rec *Record) error
	// ListByUser returns one page of the user's records, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Record, error)
	// CountByUser returns the user's total record count.
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}
