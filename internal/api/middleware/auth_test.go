package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":      "6650f0c2a1b2c3d4e5f60718",
		"username": "alice",
		"email":    "alice@example.com",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
}

func runAuth(t *testing.T, header string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth("secret")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "secret", validClaims()))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth("secret")(func(c echo.Context) error {
		called = true
		if c.Get(CtxUserID) != "6650f0c2a1b2c3d4e5f60718" {
			t.Fatalf("user_id not set")
		}
		if c.Get(CtxUsername) != "alice" {
			t.Fatalf("username not set")
		}
		if c.Get(CtxEmail) != "alice@example.com" {
			t.Fatalf("email not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Minute).Unix()

	noExp := validClaims()
	delete(noExp, "exp")

	noSub := validClaims()
	delete(noSub, "sub")

	cases := map[string]string{
		"missing header":        "",
		"invalid header format": "Token abc",
		"garbage token":         "Bearer not-a-token",
		"wrong secret":          "Bearer " + signToken(t, "other", validClaims()),
		"expired":               "Bearer " + signToken(t, "secret", expired),
		"no expiry":             "Bearer " + signToken(t, "secret", noExp),
		"no subject":            "Bearer " + signToken(t, "secret", noSub),
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			rec, called := runAuth(t, header)
			if called {
				t.Fatalf("should not reach next")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}
