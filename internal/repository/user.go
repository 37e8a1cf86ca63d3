package repository

import (
	"context"
	"errors"

	"cookbook/internal/model"
)

// ErrNotFound is returned by every store when no row matches the ID.
var ErrNotFound = errors.New("record not found")

// UserRepository defines data access for users. Implementations hold no
// business rules: IDs and timestamps are supplied by the caller.
type UserRepository interface {
	// Create inserts u and returns the stored record.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByID returns ErrNotFound when id does not exist.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// List returns all users, oldest first.
	List(ctx context.Context) ([]model.User, error)

	// Update replaces the mutable fields of the user with u.ID.
	Update(ctx context.Context, u *model.User) (*model.User, error)

	// Delete removes a user; ErrNotFound when nothing was deleted.
	Delete(ctx context.Context, id string) error
}
