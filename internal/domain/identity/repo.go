package identity

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create inserts a new user. A duplicate email yields a Conflict error
	// backed by the unique index, which is the authoritative check.
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}
