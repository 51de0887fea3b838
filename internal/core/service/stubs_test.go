package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/eventsphere/registration-api/internal/core/domain"
	"github.com/eventsphere/registration-api/internal/core/ports"
)

// memStore backs the event, registration and activity stubs with one mutex,
// so attendee updates behave like single-document atomic writes.
type memStore struct {
	mu         sync.Mutex
	events     map[string]*domain.Event
	regs       map[string]*domain.Registration
	activities []domain.Activity
	seq        int

	// failures
	createRegErr error
	encodeErr    error
}

func newMemStore() *memStore {
	return &memStore{
		events: make(map[string]*domain.Event),
		regs:   make(map[string]*domain.Registration),
	}
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s%d", prefix, s.seq)
}

func cloneEvent(e *domain.Event) *domain.Event {
	c := *e
	c.Attendees = slices.Clone(e.Attendees)
	return &c
}

func (s *memStore) put(e *domain.Event) *domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = s.nextID("ev")
	}
	if e.Attendees == nil {
		e.Attendees = []string{}
	}
	s.events[e.ID] = cloneEvent(e)
	return e
}

func (s *memStore) event(id string) *domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return nil
	}
	return cloneEvent(e)
}

func (s *memStore) registrationsFor(eventID string) []*domain.Registration {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Registration
	for _, r := range s.regs {
		if r.EventID == eventID {
			c := *r
			out = append(out, &c)
		}
	}
	return out
}

func (s *memStore) actions() []domain.ActivityAction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ActivityAction, 0, len(s.activities))
	for _, a := range s.activities {
		out = append(out, a.Action)
	}
	return out
}

type stubEventRepo struct{ s *memStore }

func (r stubEventRepo) Create(_ context.Context, e *domain.Event) error {
	r.s.put(e)
	return nil
}

func (r stubEventRepo) FindByID(_ context.Context, id string) (*domain.Event, error) {
	if e := r.s.event(id); e != nil {
		return e, nil
	}
	return nil, domain.ErrEventNotFound
}

func (r stubEventRepo) List(_ context.Context, f ports.EventFilter) ([]*domain.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Event
	for _, e := range r.s.events {
		if f.Organizer != "" && e.Organizer != f.Organizer {
			continue
		}
		if f.Attendee != "" && !slices.Contains(e.Attendees, f.Attendee) {
			continue
		}
		out = append(out, cloneEvent(e))
	}
	return out, nil
}

func (r stubEventRepo) Update(_ context.Context, id string, c ports.EventChanges) (*domain.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	if c.Title != nil {
		e.Title = *c.Title
	}
	if c.Description != nil {
		e.Description = *c.Description
	}
	if c.Location != nil {
		e.Location = *c.Location
	}
	if c.Category != nil {
		e.Category = *c.Category
	}
	if c.OrganizerContact != nil {
		e.OrganizerContact = *c.OrganizerContact
	}
	if c.Date != nil {
		e.Date = *c.Date
	}
	if c.RegistrationStartDate != nil {
		e.RegistrationStartDate = *c.RegistrationStartDate
	}
	if c.RegistrationEndDate != nil {
		e.RegistrationEndDate = *c.RegistrationEndDate
	}
	return cloneEvent(e), nil
}

func (r stubEventRepo) SetStatus(_ context.Context, id string, status domain.EventStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.events[id]
	if !ok {
		return domain.ErrEventNotFound
	}
	e.Status = status
	return nil
}

func (r stubEventRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.s.events, id)
	return nil
}

func (r stubEventRepo) AddAttendee(_ context.Context, id, identity string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.events[id]
	if !ok || e.Status != domain.EventOpen || slices.Contains(e.Attendees, identity) {
		return false, nil
	}
	e.Attendees = append(e.Attendees, identity)
	return true, nil
}

func (r stubEventRepo) RemoveAttendee(_ context.Context, id, identity string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.events[id]
	if !ok {
		return false, nil
	}
	i := slices.Index(e.Attendees, identity)
	if i < 0 {
		return false, nil
	}
	e.Attendees = slices.Delete(e.Attendees, i, i+1)
	return true, nil
}

type stubRegistrationRepo struct{ s *memStore }

func (r stubRegistrationRepo) Create(_ context.Context, reg *domain.Registration) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.createRegErr != nil {
		return r.s.createRegErr
	}
	for _, existing := range r.s.regs {
		if existing.EventID == reg.EventID && existing.Participant == reg.Participant {
			return domain.ErrAlreadyRegistered
		}
	}
	reg.ID = r.s.nextID("reg")
	c := *reg
	r.s.regs[reg.ID] = &c
	return nil
}

func (r stubRegistrationRepo) FindByID(_ context.Context, id string) (*domain.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	reg, ok := r.s.regs[id]
	if !ok {
		return nil, domain.ErrRegistrationNotFound
	}
	c := *reg
	return &c, nil
}

func (r stubRegistrationRepo) FindByParticipant(_ context.Context, participant string) ([]*domain.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Registration
	for _, reg := range r.s.regs {
		if reg.Participant == participant {
			c := *reg
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r stubRegistrationRepo) FindByEvent(_ context.Context, eventID string) ([]*domain.Registration, error) {
	return r.s.registrationsFor(eventID), nil
}

func (r stubRegistrationRepo) DeleteByEventAndParticipant(_ context.Context, eventID, participant string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, reg := range r.s.regs {
		if reg.EventID == eventID && reg.Participant == participant {
			delete(r.s.regs, id)
			return true, nil
		}
	}
	return false, nil
}

func (r stubRegistrationRepo) DeleteByEvent(_ context.Context, eventID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, reg := range r.s.regs {
		if reg.EventID == eventID {
			delete(r.s.regs, id)
			n++
		}
	}
	return n, nil
}

type stubActivityRepo struct{ s *memStore }

func (r stubActivityRepo) Record(_ context.Context, a *domain.Activity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.activities = append(r.s.activities, *a)
	return nil
}

type stubEncoder struct{ s *memStore }

func (e stubEncoder) Encode(code string) (string, error) {
	if e.s.encodeErr != nil {
		return "", e.s.encodeErr
	}
	return "qr:" + code, nil
}

// stubLock is an in-process RegistrationLock.
type stubLock struct {
	mu   sync.Mutex
	held map[string]string
	seq  int
	err  error
}

func newStubLock() *stubLock { return &stubLock{held: make(map[string]string)} }

func (l *stubLock) Acquire(_ context.Context, eventID, participant string) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return "", false, l.err
	}
	k := eventID + ":" + participant
	if _, ok := l.held[k]; ok {
		return "", false, nil
	}
	l.seq++
	token := fmt.Sprintf("t%d", l.seq)
	l.held[k] = token
	return token, true, nil
}

func (l *stubLock) Release(_ context.Context, eventID, participant, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	k := eventID + ":" + participant
	if l.held[k] == token {
		delete(l.held, k)
	}
	return nil
}

var errStoreDown = errors.New("store unavailable")
