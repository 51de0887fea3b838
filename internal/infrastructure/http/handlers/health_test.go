package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func serveReadiness(t *testing.T, h *HealthDependenciesHandler) (int, readinessResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()

	if err := h.Readiness(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Readiness returned error: %v", err)
	}

	var body readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return rec.Code, body
}

func okPinger() Pinger {
	return PingFunc(func(context.Context) error { return nil })
}

func TestLiveness(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	if err := NewHealthHandler().Liveness(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Liveness: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadiness_AllHealthy(t *testing.T) {
	code, body := serveReadiness(t, NewHealthDependenciesHandler(okPinger(), okPinger()))

	if code != http.StatusOK || body.Status != "ok" {
		t.Fatalf("unexpected response %d %+v", code, body)
	}
	if body.Dependencies["redis"].Status != "ok" {
		t.Fatalf("unexpected redis status %+v", body.Dependencies["redis"])
	}
}

func TestReadiness_RedisDisabled(t *testing.T) {
	code, body := serveReadiness(t, NewHealthDependenciesHandler(okPinger(), nil))

	if code != http.StatusOK {
		t.Fatalf("expected 200 without redis, got %d", code)
	}
	if body.Dependencies["redis"].Status != "disabled" {
		t.Fatalf("unexpected redis status %+v", body.Dependencies["redis"])
	}
}

func TestReadiness_MongoDown(t *testing.T) {
	down := PingFunc(func(context.Context) error { return errors.New("connection refused") })
	code, body := serveReadiness(t, NewHealthDependenciesHandler(down, nil))

	if code != http.StatusServiceUnavailable || body.Status != "degraded" {
		t.Fatalf("unexpected response %d %+v", code, body)
	}
	if dep := body.Dependencies["mongodb"]; dep.Status != "unhealthy" || dep.Error != "connection refused" {
		t.Fatalf("unexpected mongodb status %+v", dep)
	}
}
