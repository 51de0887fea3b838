package ports

import (
	"context"

	"github.com/eventsphere/registration-api/internal/core/domain"
)

// RegistrationRepository handles ticket record persistence.
type RegistrationRepository interface {
	Create(ctx context.Context, r *domain.Registration) error
	FindByID(ctx context.Context, id string) (*domain.Registration, error)
	FindByParticipant(ctx context.Context, participant string) ([]*domain.Registration, error)
	FindByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error)
	// DeleteByEventAndParticipant reports whether a record was deleted.
	DeleteByEventAndParticipant(ctx context.Context, eventID, participant string) (bool, error)
	DeleteByEvent(ctx context.Context, eventID string) (int64, error)
}

// ActivityRepository appends attendance audit entries.
type ActivityRepository interface {
	Record(ctx context.Context, a *domain.Activity) error
}
