package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eventsphere/registration-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain error kinds to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>", "kind": "<kind>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, missing token, ...)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message), Kind: string(kindForStatus(he.Code))}
	}

	kind := domain.KindOf(err)
	if kind == domain.KindInternal {
		// Unexpected error: log the real cause, return a generic message.
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("unhandled error")
		return http.StatusInternalServerError, errorResponse{Error: "internal server error", Kind: string(kind)}
	}

	status := statusForKind(kind)
	if errors.Is(err, domain.ErrNotOrganizer) {
		status = http.StatusForbidden
	}
	return status, errorResponse{Error: err.Error(), Kind: string(kind)}
}

func statusForKind(k domain.Kind) int {
	switch k {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindInvalidInput, domain.KindRegistrationClosed:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindDuplicateRegistration, domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func kindForStatus(status int) domain.Kind {
	switch {
	case status == http.StatusNotFound:
		return domain.KindNotFound
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domain.KindUnauthorized
	case status == http.StatusConflict:
		return domain.KindConflict
	case status >= 400 && status < 500:
		return domain.KindInvalidInput
	default:
		return domain.KindInternal
	}
}
