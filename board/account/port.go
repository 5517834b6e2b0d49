package account

import (
	"context"

	"github.com/Ejeanjules/capstone-project/pkg/kernel"
)

type Repository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id kernel.UserID) (*User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username kernel.Username) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email kernel.Email) (*User, error)

	// ExistsByUsername checks whether a username is taken
	ExistsByUsername(ctx context.Context, username kernel.Username) (bool, error)

	// ExistsByEmail checks whether an email is registered
	ExistsByEmail(ctx context.Context, email kernel.Email) (bool, error)
}
