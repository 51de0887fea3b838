// Package clock provides the time source used for registration window checks.
package clock

import "time"

// Clock reports the current instant.
type Clock interface {
	Now() time.Time
}

// Func adapts a plain function to Clock.
type Func func() time.Time

func (f Func) Now() time.Time { return f() }

// NewSystem returns a Clock backed by time.Now, in UTC.
func NewSystem() Clock {
	return Func(func() time.Time { return time.Now().UTC() })
}

// NewFixed returns a Clock frozen at t.
func NewFixed(t time.Time) Clock {
	t = t.UTC()
	return Func(func() time.Time { return t })
}
