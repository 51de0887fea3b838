package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventsphere/registration-api/internal/clock"
	"github.com/eventsphere/registration-api/internal/core/domain"
	"github.com/eventsphere/registration-api/internal/core/ports"
)

const (
	sourceParticipant = "participant"
	sourceOrganizer   = "organizer"

	compensationTimeout = 5 * time.Second
)

// attendance keeps an event's attendee set and its registration records in
// step. Both the participant and the organizer removal paths go through it.
type attendance struct {
	events        ports.EventRepository
	registrations ports.RegistrationRepository
	activity      ports.ActivityRepository
	tx            ports.Transactor
	clock         clock.Clock
	log           zerolog.Logger
}

// detach deletes the participant's registration and pulls the participant
// from the attendee set. It fails with ErrRegistrationNotFound only when
// neither piece of state existed.
func (a *attendance) detach(ctx context.Context, eventID, participant string, action domain.ActivityAction, source string) error {
	var regDeleted, attendeeRemoved bool
	err := a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		regDeleted, err = a.registrations.DeleteByEventAndParticipant(ctx, eventID, participant)
		if err != nil {
			return fmt.Errorf("delete registration: %w", err)
		}
		attendeeRemoved, err = a.events.RemoveAttendee(ctx, eventID, participant)
		if err != nil {
			return fmt.Errorf("remove attendee: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if !regDeleted && !attendeeRemoved {
		return domain.ErrRegistrationNotFound
	}

	if !regDeleted || !attendeeRemoved {
		a.log.Warn().
			Str("event_id", eventID).
			Str("participant", participant).
			Bool("registration_deleted", regDeleted).
			Bool("attendee_removed", attendeeRemoved).
			Msg("repaired partial attendance state")
	}

	a.record(ctx, eventID, participant, action, source)
	return nil
}

// record appends an audit entry. Failures are logged and swallowed.
func (a *attendance) record(ctx context.Context, eventID, participant string, action domain.ActivityAction, source string) {
	if a.activity == nil {
		return
	}
	err := a.activity.Record(ctx, &domain.Activity{
		EventID:     eventID,
		Participant: participant,
		Action:      action,
		Source:      source,
		At:          a.clock.Now(),
	})
	if err != nil {
		a.log.Warn().Err(err).Str("event_id", eventID).Str("action", string(action)).Msg("failed to record activity")
	}
}

// directTransactor runs the unit of work without a transaction.
type directTransactor struct{}

func (directTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
