package ports

import "context"

// TicketEncoder turns a registration code into a displayable QR payload.
type TicketEncoder interface {
	Encode(code string) (string, error)
}

// RegistrationLock guards one (event, participant) registration attempt at a
// time across instances.
type RegistrationLock interface {
	// Acquire reports false when another attempt currently holds the lock.
	// The returned token identifies this holder and must be passed to Release.
	Acquire(ctx context.Context, eventID, participant string) (token string, ok bool, err error)
	// Release drops the lock only while it is still held under token.
	Release(ctx context.Context, eventID, participant, token string) error
}
