package domain

import (
	"fmt"
	"time"
)

// Slot is one entry of the weekly template: a weekday, a wall-clock time and a label.
type Slot struct {
	Day    Weekday
	Hour   int
	Minute int
	Label  string
}

// Clock renders the slot time as HH:MM.
func (s Slot) Clock() string {
	return fmt.Sprintf("%02d:%02d", s.Hour, s.Minute)
}

// On places the slot on the calendar date of day, in day's location.
func (s Slot) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, s.Hour, s.Minute, 0, 0, day.Location())
}

func (s Slot) String() string {
	return fmt.Sprintf("%s %s %s", s.Day, s.Clock(), s.Label)
}

// Occurrence is a slot resolved against a concrete date.
type Occurrence struct {
	Slot Slot
	At   time.Time
}

// Countdown is a non-negative duration split into whole units.
type Countdown struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// IsZero reports whether no time remains.
func (c Countdown) IsZero() bool {
	return c == Countdown{}
}
