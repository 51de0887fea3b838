package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eventsphere/registration-api/internal/core/domain"
	"github.com/eventsphere/registration-api/internal/core/ports"
	"github.com/eventsphere/registration-api/internal/infrastructure/http/handlers"
)

type routerEventService struct{ ports.EventService }

func (routerEventService) List(context.Context) ([]*domain.Event, error) {
	return []*domain.Event{}, nil
}

func (routerEventService) Close(_ context.Context, id, organizer string) error {
	if organizer != "bob" {
		return domain.ErrNotOrganizer
	}
	return nil
}

type routerRegistrationService struct{ ports.RegistrationService }

func (routerRegistrationService) Register(context.Context, ports.RegisterInput) (*ports.RegisterResult, error) {
	return nil, domain.ErrRegistrationsClosed
}

var (
	routerOnce sync.Once
	testRouter *echo.Echo
)

// router is built once: the HTTP metrics middleware registers its
// collectors on the default Prometheus registry.
func router() *echo.Echo {
	routerOnce.Do(func() {
		testRouter = NewRouter(Dependencies{
			Log:           zerolog.Nop(),
			JWTSecret:     "secret",
			APIPrefix:     "/api",
			CORSOrigins:   []string{"https://app.example"},
			Events:        routerEventService{},
			Registrations: routerRegistrationService{},
			Mongo:         handlers.PingFunc(func(context.Context) error { return nil }),
		})
	})
	return testRouter
}

func serve(method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestRouter_Health(t *testing.T) {
	if rec := serve(http.MethodGet, "/health", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("liveness: %d", rec.Code)
	}
	rec := serve(http.MethodGet, "/health/ready", "", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"disabled"`) {
		t.Fatalf("readiness: %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_APIPrefixAndRequestID(t *testing.T) {
	rec := serve(http.MethodGet, "/api/events", "", nil)
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("list events: %d %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get(echo.HeaderXRequestID) == "" {
		t.Fatalf("expected request id header")
	}

	rec = serve(http.MethodGet, "/events", "", nil)
	if rec.Code != http.StatusNotFound || decodeError(t, rec).Kind != string(domain.KindNotFound) {
		t.Fatalf("expected enveloped 404 outside prefix, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_ErrorMapping(t *testing.T) {
	rec := serve(http.MethodPost, "/api/events/ev1/register", `{"participant":"alice"}`, nil)
	if rec.Code != http.StatusBadRequest || decodeError(t, rec).Kind != string(domain.KindRegistrationClosed) {
		t.Fatalf("register on closed event: %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(http.MethodPut, "/api/events/ev1/close", `{"organizer":"eve"}`, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("close by non-organizer: %d", rec.Code)
	}
	rec = serve(http.MethodPut, "/api/events/ev1/close", `{"organizer":"bob"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("close by organizer: %d", rec.Code)
	}
}

func TestRouter_UsersMeRequiresToken(t *testing.T) {
	rec := serve(http.MethodGet, "/api/users/me", "", nil)
	if rec.Code != http.StatusUnauthorized || decodeError(t, rec).Kind != string(domain.KindUnauthorized) {
		t.Fatalf("expected 401 envelope, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_CORS(t *testing.T) {
	rec := serve(http.MethodOptions, "/api/events", "", map[string]string{
		echo.HeaderOrigin:                     "https://app.example",
		echo.HeaderAccessControlRequestMethod: http.MethodPost,
	})
	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "https://app.example" {
		t.Fatalf("unexpected allow-origin %q", got)
	}
}

func TestRouter_Metrics(t *testing.T) {
	_ = serve(http.MethodGet, "/api/events", "", nil)

	rec := serve(http.MethodGet, "/metrics", "", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), metricsSubsystem+"_requests_total") {
		t.Fatalf("metrics endpoint missing http counters: %d", rec.Code)
	}
}
