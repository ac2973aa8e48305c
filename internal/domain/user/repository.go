package user

import (
	"context"
)

type UserRepository interface {
	// Create inserts a user; returns ErrUsernameExists / ErrEmailExists on unique violations
	Create(ctx context.Context, newUser User) (User, error)

	// GetByID returns ErrUserNotFound when no row matches
	GetByID(ctx context.Context, id string) (User, error)

	// GetByEmail returns ErrUserNotFound when no row matches
	GetByEmail(ctx context.Context, email string) (User, error)

	// ExistsByUsernameOrEmail reports which of the two identifiers are already taken
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (usernameTaken bool, emailTaken bool, err error)

	// ListByRole returns users with the given role ordered by username
	ListByRole(ctx context.Context, role Role) ([]User, error)
}
