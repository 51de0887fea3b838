package handler

import (
	"github.com/eventsphere/registration-api/internal/core/domain"
	"github.com/eventsphere/registration-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateEventInput(req createEventRequest) ports.CreateEventInput {
	return ports.CreateEventInput{
		Title:                 req.Title,
		Description:           req.Description,
		Date:                  req.Date,
		Location:              req.Location,
		Organizer:             req.Organizer,
		Category:              req.Category,
		OrganizerContact:      req.OrganizerContact,
		RegistrationStartDate: req.RegistrationStartDate,
		RegistrationEndDate:   req.RegistrationEndDate,
	}
}

func toUpdateEventInput(req updateEventRequest) ports.UpdateEventInput {
	in := ports.UpdateEventInput{
		Organizer:       req.Organizer,
		RemoveAttendees: req.RemoveAttendees,
		Changes: ports.EventChanges{
			Title:                 req.Title,
			Description:           req.Description,
			Date:                  req.Date,
			Location:              req.Location,
			Category:              req.Category,
			OrganizerContact:      req.OrganizerContact,
			RegistrationStartDate: req.RegistrationStartDate,
			RegistrationEndDate:   req.RegistrationEndDate,
		},
	}
	if req.Attendees != nil {
		in.Attendees = *req.Attendees
		if in.Attendees == nil {
			in.Attendees = []string{}
		}
	}
	return in
}

func toRegisterInput(eventID string, req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		EventID:     eventID,
		Participant: req.Participant,
		Relation:    req.Relation,
		Email:       req.Email,
		FullName:    req.FullName,
		Phone:       req.Phone,
	}
}

// --- Domain → Response ---

func toEventResponse(e *domain.Event) *eventResponse {
	if e == nil {
		return nil
	}
	attendees := e.Attendees
	if attendees == nil {
		attendees = []string{}
	}
	return &eventResponse{
		ID:                    e.ID,
		Title:                 e.Title,
		Description:           e.Description,
		Date:                  e.Date,
		Location:              e.Location,
		Organizer:             e.Organizer,
		Category:              e.Category,
		OrganizerContact:      e.OrganizerContact,
		RegistrationStartDate: e.RegistrationStartDate,
		RegistrationEndDate:   e.RegistrationEndDate,
		Status:                string(e.Status),
		Attendees:             attendees,
		CreatedAt:             e.CreatedAt,
		UpdatedAt:             e.UpdatedAt,
	}
}

func toEventResponses(events []*domain.Event) []*eventResponse {
	out := make([]*eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	return out
}

func toRegistrationResponse(r *domain.Registration) registrationResponse {
	return registrationResponse{
		ID:         r.ID,
		User:       r.Participant,
		Event:      r.EventID,
		QRCodeData: r.QRCodeData,
		FullName:   r.FullName,
		Phone:      r.Phone,
		Email:      r.Email,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func toRegistrationResponses(regs []*domain.Registration) []registrationResponse {
	out := make([]registrationResponse, 0, len(regs))
	for _, r := range regs {
		out = append(out, toRegistrationResponse(r))
	}
	return out
}

func toTicketResponses(tickets []domain.Ticket) []ticketResponse {
	out := make([]ticketResponse, 0, len(tickets))
	for i := range tickets {
		out = append(out, toTicketResponse(&tickets[i]))
	}
	return out
}

func toTicketResponse(t *domain.Ticket) ticketResponse {
	return ticketResponse{
		Registration: toRegistrationResponse(t.Registration),
		Event:        toEventResponse(t.Event),
	}
}
