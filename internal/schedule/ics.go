package schedule

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/alexanderramin/parish/internal/domain"
)

const (
	icsVersion  = "2.0"
	icsProdID   = "-//Parish//Mass Times//EN"
	icsScale    = "GREGORIAN"
	icsMethod   = "PUBLISH"
	propCalName = "X-WR-CALNAME"
	propRefresh = "REFRESH-INTERVAL"
)

var byDay = [...]string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}

// ICSOptions controls the exported calendar.
type ICSOptions struct {
	CalendarName string
	Domain       string // used in event UIDs
	Location     string // LOCATION of every event
	Duration     time.Duration
	Now          time.Time // DTSTAMP and the week the recurrences start in
}

// ExportICS writes t as an iCalendar feed with one weekly recurring event
// per slot. Each series starts at the slot's next occurrence after Now.
//
// Event times follow Now's location: UTC times for UTC, floating times for
// time.Local, and TZID-qualified times with a VTIMEZONE for named zones.
func ExportICS(w io.Writer, t Template, opts ICSOptions) error {
	if len(t) == 0 {
		return errors.New("exporting calendar: template has no slots")
	}
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.Domain == "" {
		opts.Domain = "parish.local"
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, icsVersion)
	cal.Props.SetText(ical.PropProductID, icsProdID)
	cal.Props.SetText(ical.PropCalendarScale, icsScale)
	cal.Props.SetText(ical.PropMethod, icsMethod)
	if opts.CalendarName != "" {
		cal.Props.SetText(propCalName, opts.CalendarName)
	}
	refresh := ical.NewProp(propRefresh)
	refresh.SetDuration(24 * time.Hour)
	cal.Props.Set(refresh)

	loc := opts.Now.Location()
	floating := isLocal(loc)
	if !floating && loc != time.UTC {
		cal.Children = append(cal.Children, timezoneComponent(loc, opts.Now.Year()))
	}
	for i, s := range t {
		cal.Children = append(cal.Children, slotEvent(i, s, opts, floating).Component)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encoding calendar: %w", err)
	}
	return nil
}

// isLocal reports whether loc is the process's unnamed local zone, which
// has no TZID a calendar client could resolve.
func isLocal(loc *time.Location) bool {
	return loc == time.Local || loc.String() == "Local"
}

func setEventTime(event *ical.Event, name string, t time.Time, floating bool) {
	if floating {
		event.Props.Set(localTimeProp(name, t))
		return
	}
	event.Props.SetDateTime(name, t)
}

func slotEvent(i int, s domain.Slot, opts ICSOptions, floating bool) *ical.Event {
	start := firstOnOrAfter(s, opts.Now)

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, fmt.Sprintf("mass-%d-%s-%02d%02d@%s",
		i, strings.ToLower(s.Day.String()), s.Hour, s.Minute, opts.Domain))
	event.Props.SetText(ical.PropSummary, s.Label)
	event.Props.SetDateTime(ical.PropDateTimeStamp, opts.Now.UTC())
	setEventTime(event, ical.PropDateTimeStart, start, floating)
	setEventTime(event, ical.PropDateTimeEnd, start.Add(opts.Duration), floating)
	if opts.Location != "" {
		event.Props.SetText(ical.PropLocation, opts.Location)
	}

	// Set RRULE manually to keep the value unescaped.
	rule := ical.NewProp(ical.PropRecurrenceRule)
	rule.Value = "FREQ=WEEKLY;BYDAY=" + byDay[s.Day]
	event.Props.Set(rule)

	return event
}

// firstOnOrAfter places s on the first date, starting from now's date,
// whose weekday matches.
func firstOnOrAfter(s domain.Slot, now time.Time) time.Time {
	for i := 0; i < 7; i++ {
		day := now.AddDate(0, 0, i)
		if domain.WeekdayOf(day) == s.Day {
			return s.On(day)
		}
	}
	return s.On(now)
}
