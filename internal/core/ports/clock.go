package ports

import "time"

// Clock supplies the current time for validity-window checks.
// Production uses the real clock; tests pin a fixed instant.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time {
	return f()
}
