package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/eventsphere/registration-api/internal/api/middleware"
	"github.com/eventsphere/registration-api/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, username, email, password string) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
	profileFn  func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	return s.registerFn(ctx, username, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.profileFn(ctx, userID)
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, email, password string) (*domain.User, error) {
			if username != "alice" || email != "a@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s %s", username, email, password)
			}
			return &domain.User{ID: "u1", Username: username, Email: email, PasswordHash: "hash"}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/auth/register", `{"username":"alice","email":"a@example.com","password":"secret"}`, nil)

	if err := NewAuthHandler(stub).Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["_id"] != "u1" || user["username"] != "alice" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["PasswordHash"]; leaked {
		t.Fatalf("password hash leaked")
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, email, password string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	c, _ := newContext(http.MethodPost, "/auth/register", `{"username":"bob","email":"b@example.com","password":"x"}`, nil)

	if err := NewAuthHandler(stub).Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/auth/register", `{"username":"bob","email":"not-an-email","password":"x"}`, nil)

	err := NewAuthHandler(&stubAuthService{}).Register(c)
	assertHTTPError(t, err, http.StatusBadRequest)
}

func TestAuthHandler_Login(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			if password != "right" {
				return "", nil, domain.ErrInvalidCredentials
			}
			return "token-123", &domain.User{ID: "u1", Username: "alice", Email: email}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/auth/login", `{"email":"a@example.com","password":"right"}`, nil)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "token-123" || resp.User == nil || resp.User.Username != "alice" {
		t.Fatalf("unexpected response %+v", resp)
	}

	c, _ = newContext(http.MethodPost, "/auth/login", `{"email":"a@example.com","password":"wrong"}`, nil)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	c, _ = newContext(http.MethodPost, "/auth/login", `{"email":`, nil)
	assertHTTPError(t, h.Login(c), http.StatusBadRequest)
}

func TestUserHandler_Me(t *testing.T) {
	stub := &stubAuthService{
		profileFn: func(ctx context.Context, userID string) (*domain.User, error) {
			if userID != "u1" {
				return nil, domain.ErrUserNotFound
			}
			return &domain.User{ID: "u1", Username: "alice"}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newContext(http.MethodGet, "/users/me", "", nil)
	c.Set(middleware.CtxUserID, "u1")
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newContext(http.MethodGet, "/users/me", "", nil)
	assertHTTPError(t, h.Me(c), http.StatusUnauthorized)

	c, _ = newContext(http.MethodGet, "/users/me", "", nil)
	c.Set(middleware.CtxUserID, "gone")
	if err := h.Me(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

var _ echo.Validator = NewValidator()
