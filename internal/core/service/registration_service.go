package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/eventsphere/registration-api/internal/clock"
	"github.com/eventsphere/registration-api/internal/core/domain"
	"github.com/eventsphere/registration-api/internal/core/ports"
)

type registrationService struct {
	events        ports.EventRepository
	registrations ports.RegistrationRepository
	encoder       ports.TicketEncoder
	lock          ports.RegistrationLock
	tx            ports.Transactor
	attendance    *attendance
	clock         clock.Clock
	log           zerolog.Logger
}

// RegistrationDeps groups the collaborators of the registration service.
// Lock, Activity and Tx are optional.
type RegistrationDeps struct {
	Events        ports.EventRepository
	Registrations ports.RegistrationRepository
	Activity      ports.ActivityRepository
	Encoder       ports.TicketEncoder
	Lock          ports.RegistrationLock
	Tx            ports.Transactor
	Clock         clock.Clock
}

// NewRegistrationService returns a RegistrationService implementation.
func NewRegistrationService(deps RegistrationDeps, log zerolog.Logger) ports.RegistrationService {
	tx := deps.Tx
	if tx == nil {
		tx = directTransactor{}
	}
	clk := deps.Clock
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &registrationService{
		events:        deps.Events,
		registrations: deps.Registrations,
		encoder:       deps.Encoder,
		lock:          deps.Lock,
		tx:            tx,
		clock:         clk,
		log:           log,
		attendance: &attendance{
			events:        deps.Events,
			registrations: deps.Registrations,
			activity:      deps.Activity,
			tx:            tx,
			clock:         clk,
			log:           log,
		},
	}
}

// Register admits a participant into an event exactly once and issues a
// ticket. Window and status are checked before the form fields, so a closed
// event reports RegistrationClosed whatever the body contains.
func (s *registrationService) Register(ctx context.Context, in ports.RegisterInput) (*ports.RegisterResult, error) {
	// 1. Event must exist.
	ev, err := s.events.FindByID(ctx, in.EventID)
	if err != nil {
		return nil, err
	}

	// 2. Eligibility.
	now := s.clock.Now()
	if !ev.AcceptsRegistrations(now) {
		return nil, domain.ErrRegistrationsClosed
	}

	// 3. Required fields.
	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	// 4. Normalize, 5. reject duplicates early.
	participant := domain.NormalizeIdentity(in.Participant)
	if ev.HasAttendee(participant) {
		return nil, domain.ErrAlreadyRegistered
	}

	release, err := s.acquire(ctx, ev.ID, participant)
	if err != nil {
		return nil, err
	}
	defer release()

	// 7-8. Encode the ticket before touching any state.
	code := fmt.Sprintf("%s-%s-%d", participant, ev.ID, now.UnixMilli())
	payload, err := s.encoder.Encode(code)
	if err != nil {
		return nil, fmt.Errorf("encode ticket: %w", err)
	}

	reg := &domain.Registration{
		Participant: participant,
		EventID:     ev.ID,
		QRCodeData:  payload,
		FullName:    strings.TrimSpace(in.FullName),
		Phone:       strings.TrimSpace(in.Phone),
		Email:       strings.TrimSpace(in.Email),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// 6 + 9. Attendee write and ticket insert as one unit of work.
	var added bool
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		ok, err := s.events.AddAttendee(ctx, ev.ID, participant)
		if err != nil {
			return fmt.Errorf("add attendee: %w", err)
		}
		if !ok {
			return s.admissionFailure(ctx, ev.ID, participant)
		}
		added = true

		if err := s.registrations.Create(ctx, reg); err != nil {
			return fmt.Errorf("insert registration: %w", err)
		}
		return nil
	})
	if err != nil {
		if added {
			s.compensate(ev.ID, participant)
		}
		return nil, err
	}

	s.attendance.record(ctx, ev.ID, participant, domain.ActivityRegistered, sourceParticipant)
	s.log.Info().
		Str("event_id", ev.ID).
		Str("participant", participant).
		Str("registration_id", reg.ID).
		Msg("participant registered")

	// 10.
	return &ports.RegisterResult{RegistrationID: reg.ID, QRCode: payload}, nil
}

func (s *registrationService) ListByParticipant(ctx context.Context, username string) ([]domain.Ticket, error) {
	participant := domain.NormalizeIdentity(username)
	if participant == "" {
		return nil, domain.InvalidInput("username is required")
	}

	regs, err := s.registrations.FindByParticipant(ctx, participant)
	if err != nil {
		return nil, err
	}

	tickets := make([]domain.Ticket, 0, len(regs))
	for _, r := range regs {
		ev, err := s.eventOf(ctx, r)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, domain.Ticket{Registration: r, Event: ev})
	}
	return tickets, nil
}

func (s *registrationService) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	reg, err := s.registrations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ev, err := s.eventOf(ctx, reg)
	if err != nil {
		return nil, err
	}
	return &domain.Ticket{Registration: reg, Event: ev}, nil
}

// Cancel removes the participant's registration and attendee entry together.
// Cancelling on an existing event where the participant holds neither is a
// no-op, so an organizer's attendee update followed by the cancel call the
// client sends for the same participant still succeeds.
func (s *registrationService) Cancel(ctx context.Context, eventID, participant string) error {
	p := domain.NormalizeIdentity(participant)
	if eventID == "" || p == "" {
		return domain.InvalidInput("eventId and user are required")
	}

	err := s.attendance.detach(ctx, eventID, p, domain.ActivityCancelled, sourceParticipant)
	if errors.Is(err, domain.ErrRegistrationNotFound) {
		if _, err := s.events.FindByID(ctx, eventID); err != nil {
			return err
		}
		s.log.Debug().Str("event_id", eventID).Str("participant", p).Msg("nothing to cancel")
		return nil
	}
	if err != nil {
		return err
	}
	s.log.Info().Str("event_id", eventID).Str("participant", p).Msg("registration cancelled")
	return nil
}

// eventOf loads the event a registration refers to; a deleted event yields nil.
func (s *registrationService) eventOf(ctx context.Context, r *domain.Registration) (*domain.Event, error) {
	ev, err := s.events.FindByID(ctx, r.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ev, nil
}

// admissionFailure explains why the conditional attendee write matched
// nothing, re-reading the event as it is now.
func (s *registrationService) admissionFailure(ctx context.Context, eventID, participant string) error {
	ev, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return err
	}
	if ev.HasAttendee(participant) {
		return domain.ErrAlreadyRegistered
	}
	return domain.ErrRegistrationsClosed
}

// acquire takes the optional cross-instance lock. Lock store failures do not
// block registration; the conditional attendee write still prevents doubles.
func (s *registrationService) acquire(ctx context.Context, eventID, participant string) (func(), error) {
	noop := func() {}
	if s.lock == nil {
		return noop, nil
	}

	token, ok, err := s.lock.Acquire(ctx, eventID, participant)
	if err != nil {
		s.log.Warn().Err(err).Str("event_id", eventID).Msg("registration lock unavailable, continuing without it")
		return noop, nil
	}
	if !ok {
		return nil, domain.ErrRegistrationInFlight
	}

	return func() {
		if err := s.lock.Release(context.WithoutCancel(ctx), eventID, participant, token); err != nil {
			s.log.Warn().Err(err).Str("event_id", eventID).Msg("failed to release registration lock")
		}
	}, nil
}

// compensate pulls an attendee whose ticket could not be stored. After a
// rolled-back transaction the pull is a no-op.
func (s *registrationService) compensate(eventID, participant string) {
	ctx, cancel := context.WithTimeout(context.Background(), compensationTimeout)
	defer cancel()

	if _, err := s.events.RemoveAttendee(ctx, eventID, participant); err != nil {
		s.log.Error().Err(err).
			Str("event_id", eventID).
			Str("participant", participant).
			Msg("compensation failed: attendee left without registration")
		return
	}
	s.log.Warn().Str("event_id", eventID).Str("participant", participant).Msg("attendee rolled back after failed ticket write")
}

func validateRegistration(in ports.RegisterInput) error {
	if domain.NormalizeIdentity(in.Participant) == "" ||
		in.Relation != domain.RelationParticipant ||
		strings.TrimSpace(in.Email) == "" ||
		strings.TrimSpace(in.FullName) == "" ||
		strings.TrimSpace(in.Phone) == "" {
		return domain.ErrInvalidRegistration
	}
	return nil
}
