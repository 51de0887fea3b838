package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/eventsphere/registration-api/internal/core/domain"
)

func TestResult(t *testing.T) {
	cases := map[string]error{
		"success":                nil,
		"duplicate_registration": domain.ErrAlreadyRegistered,
		"registration_closed":    domain.ErrRegistrationsClosed,
		"internal":               errors.New("boom"),
	}
	for want, err := range cases {
		if got := Result(err); got != want {
			t.Fatalf("Result(%v) = %q, want %q", err, got, want)
		}
	}
}

func TestRegistrationsTotal(t *testing.T) {
	before := testutil.ToFloat64(RegistrationsTotal.WithLabelValues("success"))
	RegistrationsTotal.WithLabelValues(Result(nil)).Inc()

	if got := testutil.ToFloat64(RegistrationsTotal.WithLabelValues("success")); got != before+1 {
		t.Fatalf("expected counter to grow by one, got %v -> %v", before, got)
	}
}
