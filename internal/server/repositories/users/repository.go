// Package users contains the user store: the Repository interface used by
// the services and its PostgreSQL, MongoDB and in-memory implementations.
//
// All implementations follow the same error contract:
//   - a missing record is common.ErrorNotFound;
//   - an id that cannot belong to this store is common.ErrorMalformedID;
//   - inserting an email that already exists is common.ErrorAlreadyExists,
//     enforced by the store itself (unique constraint, unique index or lock)
//     so concurrent signups for one email cannot both succeed.
package users

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

type Repository interface {
	// Create inserts user and returns it with ID set by the store.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id models.UserID) (*models.User, error)
}
