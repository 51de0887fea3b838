package ports

import (
	"context"
	"time"

	"github.com/eventsphere/registration-api/internal/core/domain"
)

// CreateEventInput is the DTO passed from the transport layer to EventService.
type CreateEventInput struct {
	Title                 string
	Description           string
	Date                  time.Time
	Location              string
	Organizer             string
	Category              string
	OrganizerContact      string
	RegistrationStartDate time.Time
	RegistrationEndDate   time.Time
}

// UpdateEventInput carries an organizer's update. Attendees, when non-nil, is
// the desired attendee list; it may only drop identities. RemoveAttendees
// names identities to drop directly and cannot be combined with Attendees.
type UpdateEventInput struct {
	Organizer       string
	Changes         EventChanges
	Attendees       []string
	RemoveAttendees []string
}

// EventService owns the event lifecycle and the organizer's view of attendance.
type EventService interface {
	Create(ctx context.Context, in CreateEventInput) (*domain.Event, error)
	List(ctx context.Context) ([]*domain.Event, error)
	ListByOrganizer(ctx context.Context, username string) ([]*domain.Event, error)
	ListByAttendee(ctx context.Context, username string) ([]*domain.Event, error)
	Get(ctx context.Context, id string) (*domain.Event, error)
	Update(ctx context.Context, id string, in UpdateEventInput) (*domain.Event, error)
	Close(ctx context.Context, id, organizer string) error
	Delete(ctx context.Context, id, organizer string) error
	ListRegistrations(ctx context.Context, id, organizer string) ([]*domain.Registration, error)
	RemoveRegistration(ctx context.Context, id, registrationID, organizer string) error
}
