package domain

import (
	"slices"
	"time"
)

// EventStatus represents whether an event still admits registrations.
type EventStatus string

const (
	EventOpen   EventStatus = "open"
	EventClosed EventStatus = "closed"
)

// DefaultCategory is assigned to events created without a category.
const DefaultCategory = "General"

// Event is the core aggregate: an organized happening with a registration
// window and the set of admitted attendees.
type Event struct {
	ID                    string
	Title                 string
	Description           string
	Date                  time.Time
	Location              string
	Organizer             string // normalized
	Category              string
	OrganizerContact      string
	RegistrationStartDate time.Time
	RegistrationEndDate   time.Time
	Status                EventStatus
	Attendees             []string // normalized identities
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// AcceptsRegistrations reports whether now falls inside the registration
// window (bounds inclusive) and the event is still open.
func (e *Event) AcceptsRegistrations(now time.Time) bool {
	if e.Status != EventOpen {
		return false
	}
	return !now.Before(e.RegistrationStartDate) && !now.After(e.RegistrationEndDate)
}

// HasAttendee reports whether identity is in the attendee set.
func (e *Event) HasAttendee(identity string) bool {
	return slices.Contains(e.Attendees, NormalizeIdentity(identity))
}

// OwnedBy reports whether organizer matches the stored organizer string.
// An empty organizer never matches.
func (e *Event) OwnedBy(organizer string) bool {
	n := NormalizeIdentity(organizer)
	return n != "" && n == NormalizeIdentity(e.Organizer)
}
