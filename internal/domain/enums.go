package domain

import (
	"fmt"
	"strings"
	"time"
)

type EntityKind string

const (
	KindOrganization EntityKind = "organization"
	KindCategory     EntityKind = "category"
	KindGroup        EntityKind = "group"
	KindActivity     EntityKind = "activity"
)

// EntityKinds lists every accepted kind in display order.
var EntityKinds = []EntityKind{KindOrganization, KindCategory, KindGroup, KindActivity}

// Valid reports whether k is one of the closed set of entity kinds.
func (k EntityKind) Valid() bool {
	switch k {
	case KindOrganization, KindCategory, KindGroup, KindActivity:
		return true
	default:
		return false
	}
}

// ParseEntityKind accepts a kind name in any letter case.
func ParseEntityKind(s string) (EntityKind, error) {
	k := EntityKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown entity kind %q (want organization|category|group|activity)", s)
	}
	return k, nil
}

// Weekday mirrors time.Weekday but only admits the seven named days.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func (d Weekday) String() string {
	if d < Sunday || d > Saturday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// Valid reports whether d names a real day of the week.
func (d Weekday) Valid() bool {
	return d >= Sunday && d <= Saturday
}

// Time converts d to the standard library weekday.
func (d Weekday) Time() time.Weekday {
	return time.Weekday(d)
}

// WeekdayOf returns the weekday of t in t's own location.
func WeekdayOf(t time.Time) Weekday {
	return Weekday(t.Weekday())
}

// ParseWeekday accepts the English day name in any letter case.
func ParseWeekday(s string) (Weekday, error) {
	trimmed := strings.TrimSpace(s)
	for i, name := range weekdayNames {
		if strings.EqualFold(trimmed, name) {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown day name %q", s)
}
