package users

import (
	"context"

	"github.com/dmitrijs2005/simplefilehost/internal/server/models"
)

type Repository interface {
	// Exists reports whether a user with the given username OR id exists.
	Exists(ctx context.Context, username, id string) (bool, error)
	// Create inserts user; a username or id clash is common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) error
	// GetUserByLogin returns common.ErrorNotFound for unknown usernames.
	GetUserByLogin(ctx context.Context, username string) (*models.User, error)
}
