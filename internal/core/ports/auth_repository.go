package ports

import (
	"context"

	"github.com/eventsphere/registration-api/internal/core/domain"
)

// AuthRepository defines the interface for user account persistence.
type AuthRepository interface {
	// Create stores a new user. It returns domain.ErrUserExists when the
	// username or email is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
