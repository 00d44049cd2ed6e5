package auth

import "time"

// Clock supplies the current time.  Every expiry computed or checked by
// this package goes through a Clock so tests can pin "now".
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
