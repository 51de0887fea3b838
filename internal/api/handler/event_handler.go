package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventsphere/registration-api/internal/api/metrics"
	"github.com/eventsphere/registration-api/internal/core/ports"
)

// EventHandler handles event lifecycle and organizer roster requests.
type EventHandler struct {
	events ports.EventService
}

func NewEventHandler(events ports.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// Create handles POST /events.
//
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        body  body      createEventRequest  true  "Event"
// @Success      201   {object}  eventResponse
// @Failure      400   {object}  map[string]string
// @Router       /events [post]
func (h *EventHandler) Create(c echo.Context) error {
	var req createEventRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ev, err := h.events.Create(c.Request().Context(), toCreateEventInput(req))
	if err != nil {
		return err
	}
	metrics.EventLifecycleTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, toEventResponse(ev))
}

// List handles GET /events.
//
// @Summary      List all events
// @Tags         events
// @Produce      json
// @Success      200  {array}  eventResponse
// @Router       /events [get]
func (h *EventHandler) List(c echo.Context) error {
	events, err := h.events.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponses(events))
}

// ListMine handles GET /events/mine?username=.
//
// @Summary      List events organized by a user
// @Tags         events
// @Produce      json
// @Param        username  query     string  true  "Organizer"
// @Success      200       {array}   eventResponse
// @Failure      400       {object}  map[string]string
// @Router       /events/mine [get]
func (h *EventHandler) ListMine(c echo.Context) error {
	events, err := h.events.ListByOrganizer(c.Request().Context(), c.QueryParam("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponses(events))
}

// ListRegistered handles GET /events/registered?username=.
//
// @Summary      List events a user attends
// @Tags         events
// @Produce      json
// @Param        username  query     string  true  "Participant"
// @Success      200       {array}   eventResponse
// @Failure      400       {object}  map[string]string
// @Router       /events/registered [get]
func (h *EventHandler) ListRegistered(c echo.Context) error {
	events, err := h.events.ListByAttendee(c.Request().Context(), c.QueryParam("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponses(events))
}

// Get handles GET /events/:id.
//
// @Summary      Event detail
// @Tags         events
// @Produce      json
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  eventResponse
// @Failure      404  {object}  map[string]string
// @Router       /events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	ev, err := h.events.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponse(ev))
}

// Update handles PUT /events/:id. Attendees, when present, may only drop
// identities; each dropped identity loses its registration too.
//
// @Summary      Update an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Event ID"
// @Param        body  body      updateEventRequest  true  "Changed fields and organizer"
// @Success      200   {object}  eventResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	var req updateEventRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	ev, err := h.events.Update(c.Request().Context(), c.Param("id"), toUpdateEventInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEventResponse(ev))
}

// Close handles PUT /events/:id/close.
//
// @Summary      Close registrations
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "Event ID"
// @Param        body  body      organizerRequest  true  "Organizer"
// @Success      200   {object}  messageResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /events/{id}/close [put]
func (h *EventHandler) Close(c echo.Context) error {
	var req organizerRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	if err := h.events.Close(c.Request().Context(), c.Param("id"), req.Organizer); err != nil {
		return err
	}
	metrics.EventLifecycleTotal.WithLabelValues("closed").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Event closed successfully"})
}

// Delete handles DELETE /events/:id. The organizer may come in the body or
// the query string.
//
// @Summary      Delete an event and its registrations
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id         path      string            true   "Event ID"
// @Param        organizer  query     string            false  "Organizer"
// @Param        body       body      organizerRequest  false  "Organizer"
// @Success      200        {object}  messageResponse
// @Failure      403        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	var req organizerRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	if err := h.events.Delete(c.Request().Context(), c.Param("id"), req.Organizer); err != nil {
		return err
	}
	metrics.EventLifecycleTotal.WithLabelValues("deleted").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Event deleted successfully"})
}

// ListRegistrations handles GET /events/:id/registrations?organizer=.
//
// @Summary      Event roster
// @Tags         events
// @Produce      json
// @Param        id         path      string  true  "Event ID"
// @Param        organizer  query     string  true  "Organizer"
// @Success      200        {array}   registrationResponse
// @Failure      403        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /events/{id}/registrations [get]
func (h *EventHandler) ListRegistrations(c echo.Context) error {
	regs, err := h.events.ListRegistrations(c.Request().Context(), c.Param("id"), c.QueryParam("organizer"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRegistrationResponses(regs))
}

// RemoveRegistration handles DELETE /events/:id/registrations/:registrationId.
//
// @Summary      Remove an attendee and their registration
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id              path      string            true   "Event ID"
// @Param        registrationId  path      string            true   "Registration ID"
// @Param        organizer       query     string            false  "Organizer"
// @Param        body            body      organizerRequest  false  "Organizer"
// @Success      200             {object}  messageResponse
// @Failure      403             {object}  map[string]string
// @Failure      404             {object}  map[string]string
// @Router       /events/{id}/registrations/{registrationId} [delete]
func (h *EventHandler) RemoveRegistration(c echo.Context) error {
	var req organizerRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	err := h.events.RemoveRegistration(c.Request().Context(), c.Param("id"), c.Param("registrationId"), req.Organizer)
	if err != nil {
		return err
	}
	metrics.AttendeeRemovalsTotal.WithLabelValues("organizer").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Registration removed"})
}
