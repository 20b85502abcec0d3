package kernel

import "time"

// Clock supplies the current time to use cases that stamp aggregates
// (lastLogin, pickedAt, deliveredAt, paidAt, cashoutTime).
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

// Now returns time.Now in UTC truncated to microseconds, the precision
// PostgreSQL keeps for timestamptz columns.
func (SystemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// FixedClock always returns the same instant.
type FixedClock struct {
	At time.Time
}

// Now returns c.At.
func (c FixedClock) Now() time.Time {
	return c.At
}
