package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventsphere/registration-api/internal/api/middleware"
)

// ctxUserID extracts the account id injected by the Auth middleware. Its
// presence proves the middleware ran.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

// bindJSON binds the request body and reports malformed payloads as 400.
func bindJSON(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return nil
}
