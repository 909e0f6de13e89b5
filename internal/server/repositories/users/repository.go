// Package users contains the persistent user directory: records keyed by a
// unique username.
package users

import (
	"context"

	"github.com/dmitrijs2005/authd/internal/server/models"
)

type Repository interface {
	// Create inserts a new record and fills in its generated ID.
	// A username collision yields common.ErrDuplicateUsername.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// CreateIfAbsent inserts the record unless the username is already taken.
	// Reports whether a row was inserted. Safe under concurrent callers.
	CreateIfAbsent(ctx context.Context, user *models.User) (bool, error)

	// GetByUsername returns the record for the exact (case-sensitive)
	// username, or common.ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// List returns all records ordered by username.
	List(ctx context.Context) ([]*models.User, error)

	// Delete removes the record, or returns common.ErrNotFound.
	Delete(ctx context.Context, username string) error
}
