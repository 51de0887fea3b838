package ports

import (
	"context"

	"github.com/eventsphere/registration-api/internal/core/domain"
)

// RegisterInput carries the participant's registration form.
type RegisterInput struct {
	EventID     string
	Participant string
	Relation    string
	Email       string
	FullName    string
	Phone       string
}

// RegisterResult is returned after a successful registration.
type RegisterResult struct {
	RegistrationID string
	QRCode         string
}

// RegistrationService admits participants and serves their tickets.
type RegistrationService interface {
	Register(ctx context.Context, in RegisterInput) (*RegisterResult, error)
	ListByParticipant(ctx context.Context, username string) ([]domain.Ticket, error)
	Get(ctx context.Context, id string) (*domain.Ticket, error)
	Cancel(ctx context.Context, eventID, participant string) error
}
