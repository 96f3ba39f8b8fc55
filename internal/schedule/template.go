// Package schedule resolves a fixed weekly template of Mass times against
// the current instant: the next occurrence, whether one is under way, and
// how long remains until a target.
package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alexanderramin/parish/internal/domain"
)

// ErrInvalidTemplate is matched by every template validation failure.
var ErrInvalidTemplate = errors.New("invalid schedule template")

var clockPattern = regexp.MustCompile(`^([0-9]{2}):([0-9]{2})$`)

// RawSlot is the external shape of a template entry.
type RawSlot struct {
	DayName string `json:"dayName" yaml:"dayName"`
	Time    string `json:"time" yaml:"time"`
	Label   string `json:"label" yaml:"label"`
}

// Template is an ordered, validated weekly schedule. Order within a day is
// significant for FindNextOccurrence.
type Template []domain.Slot

// ValidationError collects every problem found in a raw template.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidTemplate, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidTemplate
}

// ParseClock parses "HH:MM" in 24-hour form.
func ParseClock(s string) (hour, minute int, err error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, fmt.Errorf("time %q is not HH:MM", s)
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if hour > 23 {
		return 0, 0, fmt.Errorf("time %q: hour must be 00-23", s)
	}
	if minute > 59 {
		return 0, 0, fmt.Errorf("time %q: minute must be 00-59", s)
	}
	return hour, minute, nil
}

// ParseTemplate validates every entry and returns the template, or a
// *ValidationError naming each bad entry.
func ParseTemplate(raw []RawSlot) (Template, error) {
	var problems []string
	out := make(Template, 0, len(raw))

	for i, r := range raw {
		var bad []string
		day, err := domain.ParseWeekday(r.DayName)
		if err != nil {
			bad = append(bad, err.Error())
		}
		hour, minute, err := ParseClock(r.Time)
		if err != nil {
			bad = append(bad, err.Error())
		}
		if strings.TrimSpace(r.Label) == "" {
			bad = append(bad, "label is required")
		}
		if len(bad) > 0 {
			for _, b := range bad {
				problems = append(problems, fmt.Sprintf("slot[%d]: %s", i, b))
			}
			continue
		}
		out = append(out, domain.Slot{Day: day, Hour: hour, Minute: minute, Label: strings.TrimSpace(r.Label)})
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}
	return out, nil
}

// MustParseTemplate is ParseTemplate for package-level literals.
func MustParseTemplate(raw []RawSlot) Template {
	t, err := ParseTemplate(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// Raw converts the template back to its external shape.
func (t Template) Raw() []RawSlot {
	out := make([]RawSlot, 0, len(t))
	for _, s := range t {
		out = append(out, RawSlot{DayName: s.Day.String(), Time: s.Clock(), Label: s.Label})
	}
	return out
}

// On returns the slots for day, in template order.
func (t Template) On(day domain.Weekday) []domain.Slot {
	var out []domain.Slot
	for _, s := range t {
		if s.Day == day {
			out = append(out, s)
		}
	}
	return out
}

var defaultMassTimes = MustParseTemplate([]RawSlot{
	{DayName: "Sunday", Time: "07:30", Label: "Early Mass"},
	{DayName: "Sunday", Time: "09:00", Label: "Family Mass"},
	{DayName: "Sunday", Time: "11:00", Label: "Solemn Mass"},
	{DayName: "Sunday", Time: "17:30", Label: "Youth Mass"},
	{DayName: "Monday", Time: "08:00", Label: "Daily Mass"},
	{DayName: "Tuesday", Time: "08:00", Label: "Daily Mass"},
	{DayName: "Wednesday", Time: "08:00", Label: "Daily Mass"},
	{DayName: "Wednesday", Time: "19:00", Label: "Evening Mass"},
	{DayName: "Thursday", Time: "08:00", Label: "Daily Mass"},
	{DayName: "Friday", Time: "08:00", Label: "Daily Mass"},
	{DayName: "Saturday", Time: "09:00", Label: "Morning Mass"},
	{DayName: "Saturday", Time: "17:00", Label: "Vigil Mass"},
})

// DefaultMassTimes returns the parish's weekly Mass schedule.
func DefaultMassTimes() Template {
	out := make(Template, len(defaultMassTimes))
	copy(out, defaultMassTimes)
	return out
}
