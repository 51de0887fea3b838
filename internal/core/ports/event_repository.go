package ports

import (
	"context"
	"time"

	"github.com/eventsphere/registration-api/internal/core/domain"
)

// EventFilter selects events by equality on the organizer or by membership in
// the attendee set. Empty fields do not filter.
type EventFilter struct {
	Organizer string
	Attendee  string
}

// EventChanges carries the organizer-editable fields of an event. Nil fields
// are left untouched.
type EventChanges struct {
	Title                 *string
	Description           *string
	Date                  *time.Time
	Location              *string
	Category              *string
	OrganizerContact      *string
	RegistrationStartDate *time.Time
	RegistrationEndDate   *time.Time
}

// IsEmpty reports whether no field is set.
func (c EventChanges) IsEmpty() bool {
	return c.Title == nil && c.Description == nil && c.Date == nil && c.Location == nil &&
		c.Category == nil && c.OrganizerContact == nil &&
		c.RegistrationStartDate == nil && c.RegistrationEndDate == nil
}

// EventRepository handles event persistence. Attendee mutations are single
// atomic updates on the attendee field; they never rewrite the whole document.
type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) error
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context, filter EventFilter) ([]*domain.Event, error)
	// Update applies changes and returns the updated event.
	Update(ctx context.Context, id string, changes EventChanges) (*domain.Event, error)
	SetStatus(ctx context.Context, id string, status domain.EventStatus) error
	Delete(ctx context.Context, id string) error

	// AddAttendee adds identity to the attendee set only if the event is open
	// and identity is not yet present. It reports whether the event was modified.
	AddAttendee(ctx context.Context, id, identity string) (bool, error)
	// RemoveAttendee pulls identity from the attendee set and reports whether
	// the event was modified.
	RemoveAttendee(ctx context.Context, id, identity string) (bool, error)
}
