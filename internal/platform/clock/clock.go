// Package clock provides the time source injected into time-dependent queries.
package clock

import "time"

// Clock returns the current instant.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock in UTC.
type System struct{}

// Now implements Clock.
func (System) Now() time.Time { return time.Now().UTC() }

// Fixed always returns the same instant.
type Fixed struct {
	At time.Time
}

// Now implements Clock.
func (f Fixed) Now() time.Time { return f.At }
