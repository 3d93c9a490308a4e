// Package clock centralises how the service reads and normalises time.
// Everything persisted or compared is UTC.
package clock

import "time"

// Func returns the current instant. Use cases take one so tests can pin time.
type Func func() time.Time

func Now() time.Time {
	return time.Now().UTC()
}

func UTC(t time.Time) time.Time {
	return t.UTC()
}

// Fixed returns a Func that always reports t (in UTC).
func Fixed(t time.Time) Func {
	t = t.UTC()
	return func() time.Time { return t }
}
