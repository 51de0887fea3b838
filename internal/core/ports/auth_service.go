package ports

import (
	"context"

	"github.com/eventsphere/registration-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
}
