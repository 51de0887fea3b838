package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventsphere/registration-api/internal/api/metrics"
	"github.com/eventsphere/registration-api/internal/core/ports"
)

// RegistrationHandler handles participant registration and ticket requests.
type RegistrationHandler struct {
	registrations ports.RegistrationService
}

func NewRegistrationHandler(registrations ports.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations}
}

// Register handles POST /events/:id/register.
//
// @Summary      Register for an event
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "Event ID"
// @Param        body  body      registerRequest  true  "Registration form"
// @Success      200   {object}  registerResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /events/{id}/register [post]
func (h *RegistrationHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	start := time.Now()
	res, err := h.registrations.Register(c.Request().Context(), toRegisterInput(c.Param("id"), req))
	result := metrics.Result(err)
	metrics.RegistrationsTotal.WithLabelValues(result).Inc()
	metrics.RegistrationDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, registerResponse{
		Message:        "Registration successful",
		RegistrationID: res.RegistrationID,
		QRCode:         res.QRCode,
	})
}

// ListByUser handles GET /registrations?username=.
//
// @Summary      A user's registrations with their events
// @Tags         registrations
// @Produce      json
// @Param        username  query     string  true  "Participant"
// @Success      200       {array}   ticketResponse
// @Failure      400       {object}  map[string]string
// @Router       /registrations [get]
func (h *RegistrationHandler) ListByUser(c echo.Context) error {
	tickets, err := h.registrations.ListByParticipant(c.Request().Context(), c.QueryParam("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTicketResponses(tickets))
}

// Get handles GET /registrations/:id.
//
// @Summary      Ticket detail
// @Tags         registrations
// @Produce      json
// @Param        id   path      string  true  "Registration ID"
// @Success      200  {object}  ticketResponse
// @Failure      404  {object}  map[string]string
// @Router       /registrations/{id} [get]
func (h *RegistrationHandler) Get(c echo.Context) error {
	ticket, err := h.registrations.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTicketResponse(ticket))
}

// Cancel handles DELETE /registrations?eventId=&user=. The attendee entry is
// removed along with the registration.
//
// @Summary      Cancel a registration
// @Tags         registrations
// @Produce      json
// @Param        eventId  query     string  true  "Event ID"
// @Param        user     query     string  true  "Participant"
// @Success      200      {object}  messageResponse
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /registrations [delete]
func (h *RegistrationHandler) Cancel(c echo.Context) error {
	var q cancelQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	if err := h.registrations.Cancel(c.Request().Context(), q.EventID, q.User); err != nil {
		return err
	}
	metrics.AttendeeRemovalsTotal.WithLabelValues("participant").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Registration cancelled"})
}
