package schedule

import "time"

// Clock abstracts time.Now so resolvers can be driven deterministically.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock in the configured location.
type RealClock struct {
	Location *time.Location
}

func (c RealClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time {
	return time.Time(c)
}
