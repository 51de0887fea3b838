package main

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestShutdown(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"clean", nil, false},
		{"already closed", http.ErrServerClosed, false},
		{"deadline", context.DeadlineExceeded, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sawDeadline bool
			fn := func(ctx context.Context) error {
				_, sawDeadline = ctx.Deadline()
				return tt.err
			}
			err := shutdown(fn, time.Second, zerolog.Nop())
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, tt.err) {
				t.Errorf("err = %v, want wrapping %v", err, tt.err)
			}
			if !sawDeadline {
				t.Error("shutdown context has no deadline")
			}
		})
	}
}
