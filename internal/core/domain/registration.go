package domain

import "time"

// RelationParticipant is the only relation tag accepted at registration.
const RelationParticipant = "participant"

// Registration is the ticket record issued by a successful registration.
type Registration struct {
	ID          string
	Participant string // normalized
	EventID     string
	QRCodeData  string
	FullName    string
	Phone       string
	Email       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Ticket pairs a registration with the event it admits to. Event is nil when
// the event no longer exists.
type Ticket struct {
	Registration *Registration
	Event        *Event
}
