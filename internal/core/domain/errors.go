package domain

import "errors"

// Kind classifies an error for callers that need to react to it, most
// notably the HTTP layer when choosing a status code.
type Kind string

const (
	KindNotFound              Kind = "not_found"
	KindInvalidInput          Kind = "invalid_input"
	KindUnauthorized          Kind = "unauthorized"
	KindDuplicateRegistration Kind = "duplicate_registration"
	KindRegistrationClosed    Kind = "registration_closed"
	KindConflict              Kind = "conflict"
	KindInternal              Kind = "internal"
)

// Error is a classified domain error.
//
// A value without a Message is a bare kind sentinel: errors.Is reports true
// when comparing any error of the same Kind against it.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// Is lets errors.Is(err, ErrNotFound) match every not_found error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

// Kind sentinels.
var (
	ErrNotFound              = &Error{Kind: KindNotFound}
	ErrInvalidInput          = &Error{Kind: KindInvalidInput}
	ErrUnauthorized          = &Error{Kind: KindUnauthorized}
	ErrDuplicateRegistration = &Error{Kind: KindDuplicateRegistration}
	ErrRegistrationClosed    = &Error{Kind: KindRegistrationClosed}
	ErrConflict              = &Error{Kind: KindConflict}
)

var (
	ErrEventNotFound        = &Error{Kind: KindNotFound, Message: "event not found"}
	ErrRegistrationNotFound = &Error{Kind: KindNotFound, Message: "registration not found"}
	ErrUserNotFound         = &Error{Kind: KindNotFound, Message: "user not found"}

	ErrNotOrganizer       = &Error{Kind: KindUnauthorized, Message: "not authorized to modify this event"}
	ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Message: "invalid credentials"}

	ErrAlreadyRegistered         = &Error{Kind: KindDuplicateRegistration, Message: "already registered for this event"}
	ErrRegistrationInFlight      = &Error{Kind: KindDuplicateRegistration, Message: "registration already in progress"}
	ErrRegistrationsClosed       = &Error{Kind: KindRegistrationClosed, Message: "registrations closed"}
	ErrUserExists                = &Error{Kind: KindConflict, Message: "user already exists"}
	ErrInvalidRegistration       = &Error{Kind: KindInvalidInput, Message: "invalid registration data"}
	ErrAttendeesOnlyShrink       = &Error{Kind: KindInvalidInput, Message: "attendees can only be removed through an event update"}
	ErrInvalidRegistrationWindow = &Error{Kind: KindInvalidInput, Message: "registration start must not be after registration end"}
)

// InvalidInput builds an invalid_input error carrying msg.
func InvalidInput(msg string) error {
	return &Error{Kind: KindInvalidInput, Message: msg}
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
