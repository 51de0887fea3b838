package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const readinessTimeout = 3 * time.Second

// Pinger is a dependency the readiness probe can check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// MongoPinger checks the primary of the given client.
func MongoPinger(client *mongo.Client) Pinger {
	return PingFunc(func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	})
}

// RedisPinger checks the given Redis client.
func RedisPinger(client *redis.Client) Pinger {
	return PingFunc(func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
}

// HealthHandler handles GET /health, the liveness probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// HealthDependenciesHandler handles GET /health/ready. MongoDB is required;
// Redis is reported as "disabled" when the lock is not configured.
type HealthDependenciesHandler struct {
	mongo Pinger
	redis Pinger
}

func NewHealthDependenciesHandler(mongo, redis Pinger) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{
		mongo: mongo,
		redis: redis,
	}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	deps := make(map[string]dependencyStatus, 2)
	healthy := true

	check := func(name string, p Pinger) {
		if p == nil {
			deps[name] = dependencyStatus{Status: "disabled"}
			return
		}
		if err := p.Ping(ctx); err != nil {
			deps[name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
			return
		}
		deps[name] = dependencyStatus{Status: "ok"}
	}

	check("mongodb", h.mongo)
	check("redis", h.redis)

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
