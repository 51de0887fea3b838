package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/eventsphere/registration-api/internal/clock"
	"github.com/eventsphere/registration-api/internal/core/domain"
	"github.com/eventsphere/registration-api/internal/core/ports"
)

type eventService struct {
	events        ports.EventRepository
	registrations ports.RegistrationRepository
	tx            ports.Transactor
	attendance    *attendance
	clock         clock.Clock
	log           zerolog.Logger
}

// NewEventService returns an EventService implementation. A nil transactor
// runs every unit of work without a transaction.
func NewEventService(
	events ports.EventRepository,
	registrations ports.RegistrationRepository,
	activity ports.ActivityRepository,
	tx ports.Transactor,
	clk clock.Clock,
	log zerolog.Logger,
) ports.EventService {
	if tx == nil {
		tx = directTransactor{}
	}
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &eventService{
		events:        events,
		registrations: registrations,
		tx:            tx,
		clock:         clk,
		log:           log,
		attendance: &attendance{
			events:        events,
			registrations: registrations,
			activity:      activity,
			tx:            tx,
			clock:         clk,
			log:           log,
		},
	}
}

func (s *eventService) Create(ctx context.Context, in ports.CreateEventInput) (*domain.Event, error) {
	organizer := domain.NormalizeIdentity(in.Organizer)
	if organizer == "" {
		return nil, domain.InvalidInput("organizer is required")
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Location) == "" || in.Date.IsZero() {
		return nil, domain.InvalidInput("title, date and location are required")
	}
	if in.RegistrationStartDate.IsZero() || in.RegistrationEndDate.IsZero() {
		return nil, domain.InvalidInput("registration start and end dates are required")
	}
	if in.RegistrationStartDate.After(in.RegistrationEndDate) {
		return nil, domain.ErrInvalidRegistrationWindow
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = domain.DefaultCategory
	}

	now := s.clock.Now()
	ev := &domain.Event{
		Title:                 in.Title,
		Description:           in.Description,
		Date:                  in.Date.UTC(),
		Location:              in.Location,
		Organizer:             organizer,
		Category:              category,
		OrganizerContact:      in.OrganizerContact,
		RegistrationStartDate: in.RegistrationStartDate.UTC(),
		RegistrationEndDate:   in.RegistrationEndDate.UTC(),
		Status:                domain.EventOpen,
		Attendees:             []string{},
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.events.Create(ctx, ev); err != nil {
		s.log.Error().Err(err).Str("organizer", organizer).Msg("failed to create event")
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.log.Info().Str("event_id", ev.ID).Str("organizer", organizer).Msg("event created")
	return ev, nil
}

func (s *eventService) List(ctx context.Context) ([]*domain.Event, error) {
	return s.events.List(ctx, ports.EventFilter{})
}

func (s *eventService) ListByOrganizer(ctx context.Context, username string) ([]*domain.Event, error) {
	u := domain.NormalizeIdentity(username)
	if u == "" {
		return nil, domain.InvalidInput("username is required")
	}
	return s.events.List(ctx, ports.EventFilter{Organizer: u})
}

func (s *eventService) ListByAttendee(ctx context.Context, username string) ([]*domain.Event, error) {
	u := domain.NormalizeIdentity(username)
	if u == "" {
		return nil, domain.InvalidInput("username is required")
	}
	return s.events.List(ctx, ports.EventFilter{Attendee: u})
}

func (s *eventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	return s.events.FindByID(ctx, id)
}

// Update applies the organizer's field changes. Identities dropped from the
// attendee list are detached together with their registrations.
func (s *eventService) Update(ctx context.Context, id string, in ports.UpdateEventInput) (*domain.Event, error) {
	ev, err := s.owned(ctx, id, in.Organizer)
	if err != nil {
		return nil, err
	}

	var removed []string
	switch {
	case in.Attendees != nil && in.RemoveAttendees != nil:
		return nil, domain.InvalidInput("attendees and removeAttendees cannot be combined")
	case in.Attendees != nil:
		removed, err = attendeeRemovals(ev.Attendees, in.Attendees)
		if err != nil {
			return nil, err
		}
	case in.RemoveAttendees != nil:
		removed = namedRemovals(ev.Attendees, in.RemoveAttendees)
	}

	start, end := ev.RegistrationStartDate, ev.RegistrationEndDate
	if in.Changes.RegistrationStartDate != nil {
		start = *in.Changes.RegistrationStartDate
	}
	if in.Changes.RegistrationEndDate != nil {
		end = *in.Changes.RegistrationEndDate
	}
	if start.After(end) {
		return nil, domain.ErrInvalidRegistrationWindow
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if !in.Changes.IsEmpty() {
			if _, err := s.events.Update(ctx, id, in.Changes); err != nil {
				return fmt.Errorf("update event: %w", err)
			}
		}
		for _, participant := range removed {
			if err := s.attendance.detach(ctx, id, participant, domain.ActivityRemoved, sourceOrganizer); err != nil {
				return fmt.Errorf("remove attendee %s: %w", participant, err)
			}
			s.log.Info().Str("event_id", id).Str("participant", participant).Msg("attendee removed by organizer")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.events.FindByID(ctx, id)
}

// Close is irreversible: no operation sets the status back to open.
func (s *eventService) Close(ctx context.Context, id, organizer string) error {
	if _, err := s.owned(ctx, id, organizer); err != nil {
		return err
	}
	if err := s.events.SetStatus(ctx, id, domain.EventClosed); err != nil {
		return fmt.Errorf("close event: %w", err)
	}
	s.log.Info().Str("event_id", id).Msg("event closed")
	return nil
}

// Delete removes the event together with all of its registrations.
func (s *eventService) Delete(ctx context.Context, id, organizer string) error {
	if _, err := s.owned(ctx, id, organizer); err != nil {
		return err
	}

	var dropped int64
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.events.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete event: %w", err)
		}
		n, err := s.registrations.DeleteByEvent(ctx, id)
		if err != nil {
			return fmt.Errorf("delete event registrations: %w", err)
		}
		dropped = n
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info().Str("event_id", id).Int64("registrations_deleted", dropped).Msg("event deleted")
	return nil
}

func (s *eventService) ListRegistrations(ctx context.Context, id, organizer string) ([]*domain.Registration, error) {
	if _, err := s.owned(ctx, id, organizer); err != nil {
		return nil, err
	}
	return s.registrations.FindByEvent(ctx, id)
}

func (s *eventService) RemoveRegistration(ctx context.Context, id, registrationID, organizer string) error {
	if _, err := s.owned(ctx, id, organizer); err != nil {
		return err
	}

	reg, err := s.registrations.FindByID(ctx, registrationID)
	if err != nil {
		return err
	}
	if reg.EventID != id {
		return domain.ErrRegistrationNotFound
	}

	return s.attendance.detach(ctx, id, reg.Participant, domain.ActivityRemoved, sourceOrganizer)
}

// owned loads the event and checks the caller-supplied organizer string
// against the stored one.
func (s *eventService) owned(ctx context.Context, id, organizer string) (*domain.Event, error) {
	ev, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ev.OwnedBy(organizer) {
		s.log.Warn().Str("event_id", id).Msg("organizer mismatch")
		return nil, domain.ErrNotOrganizer
	}
	return ev, nil
}

// namedRemovals returns the named identities that are current attendees.
// Anyone admitted after the caller's read is left alone.
func namedRemovals(current, names []string) []string {
	var removed []string
	for _, n := range names {
		n = domain.NormalizeIdentity(n)
		if slices.Contains(current, n) && !slices.Contains(removed, n) {
			removed = append(removed, n)
		}
	}
	return removed
}

// attendeeRemovals returns the identities in current that are missing from
// desired. The list is compared against the event as read now, so a
// participant admitted after the organizer loaded the page is removed too. Identities in desired that are not already attendees are rejected.
func attendeeRemovals(current, desired []string) ([]string, error) {
	keep := make(map[string]struct{}, len(desired))
	for _, d := range desired {
		keep[domain.NormalizeIdentity(d)] = struct{}{}
	}

	have := make(map[string]struct{}, len(current))
	var removed []string
	for _, c := range current {
		have[c] = struct{}{}
		if _, ok := keep[c]; !ok {
			removed = append(removed, c)
		}
	}

	for d := range keep {
		if _, ok := have[d]; !ok {
			return nil, domain.ErrAttendeesOnlyShrink
		}
	}
	return removed, nil
}
