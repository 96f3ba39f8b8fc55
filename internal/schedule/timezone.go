package schedule

import (
	"fmt"
	"time"

	"github.com/emersion/go-ical"
)

// icsLocalFormat is a DATE-TIME without a zone designator.
const icsLocalFormat = "20060102T150405"

// zoneSpanYears is how many years of explicit observances are written for
// zones whose changes do not follow a yearly weekday rule.
const zoneSpanYears = 5

// zoneTransition is a UTC offset change read from a location's zone data.
type zoneTransition struct {
	at       time.Time
	from, to int // seconds east of UTC
	name     string
}

// onset is the transition instant on the wall clock in effect before it.
func (z zoneTransition) onset() time.Time {
	return z.at.In(time.FixedZone("", z.from))
}

func (z zoneTransition) observance() string {
	if z.to > z.from {
		return ical.CompTimezoneDaylight
	}
	return ical.CompTimezoneStandard
}

// yearlyRule is a transition expressed as "nth weekday of month at clock".
// n is -1 for the last such weekday.
type yearlyRule struct {
	month   time.Month
	weekday time.Weekday
	n       int
	clock   time.Duration
	from    int
	to      int
}

func ruleOf(z zoneTransition) yearlyRule {
	local := z.onset()
	n := (local.Day()-1)/7 + 1
	if local.Day()+7 > daysIn(local.Year(), local.Month()) {
		n = -1
	}
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
	return yearlyRule{
		month:   local.Month(),
		weekday: local.Weekday(),
		n:       n,
		clock:   local.Sub(midnight),
		from:    z.from,
		to:      z.to,
	}
}

func (r yearlyRule) String() string {
	return fmt.Sprintf("FREQ=YEARLY;BYMONTH=%d;BYDAY=%d%s", r.month, r.n, byDay[r.weekday])
}

// in returns the rule's onset in year on the pre-transition wall clock.
func (r yearlyRule) in(year int) time.Time {
	var day int
	if r.n < 0 {
		last := daysIn(year, r.month)
		wd := time.Date(year, r.month, last, 0, 0, 0, 0, time.UTC).Weekday()
		day = last - (int(wd)-int(r.weekday)+7)%7
	} else {
		wd := time.Date(year, r.month, 1, 0, 0, 0, 0, time.UTC).Weekday()
		day = 1 + (int(r.weekday)-int(wd)+7)%7 + (r.n-1)*7
	}
	return time.Date(year, r.month, day, 0, 0, 0, 0, time.UTC).Add(r.clock)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// transitionsIn scans year day by day and bisects each offset change
// down to the second.
func transitionsIn(loc *time.Location, year int) []zoneTransition {
	start := time.Date(year, 1, 1, 0, 0, 0, 0, loc)
	end := time.Date(year+1, 1, 1, 0, 0, 0, 0, loc)

	var out []zoneTransition
	_, prev := start.Zone()
	for day := start; day.Before(end); day = day.Add(24 * time.Hour) {
		next := day.Add(24 * time.Hour)
		if _, off := next.Zone(); off == prev {
			continue
		}
		lo, hi := day.Unix(), next.Unix()
		for hi-lo > 1 {
			mid := lo + (hi-lo)/2
			if _, off := time.Unix(mid, 0).In(loc).Zone(); off == prev {
				lo = mid
			} else {
				hi = mid
			}
		}
		at := time.Unix(hi, 0).In(loc)
		name, off := at.Zone()
		out = append(out, zoneTransition{at: at.UTC(), from: prev, to: off, name: name})
		prev = off
	}
	return out
}

func repeatsYearly(cur, next []zoneTransition) bool {
	if len(cur) == 0 || len(cur) != len(next) {
		return false
	}
	for i := range cur {
		if ruleOf(cur[i]) != ruleOf(next[i]) {
			return false
		}
	}
	return true
}

// timezoneComponent builds the VTIMEZONE for loc around year. Zones with a
// stable yearly rule get one recurring observance per change; others get
// explicit observances for the years around year.
func timezoneComponent(loc *time.Location, year int) *ical.Component {
	tz := ical.NewComponent(ical.CompTimezone)
	tz.Props.SetText(ical.PropTimezoneID, loc.String())

	cur := transitionsIn(loc, year)
	switch {
	case len(cur) == 0:
		name, off := time.Date(year, 1, 1, 0, 0, 0, 0, loc).Zone()
		epoch := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
		tz.Children = append(tz.Children, observanceComponent(ical.CompTimezoneStandard, epoch, off, off, name, ""))
	case repeatsYearly(cur, transitionsIn(loc, year+1)):
		for _, z := range cur {
			r := ruleOf(z)
			tz.Children = append(tz.Children, observanceComponent(z.observance(), r.in(1970), z.from, z.to, z.name, r.String()))
		}
	default:
		for y := year - 1; y < year+zoneSpanYears; y++ {
			for _, z := range transitionsIn(loc, y) {
				tz.Children = append(tz.Children, observanceComponent(z.observance(), z.onset(), z.from, z.to, z.name, ""))
			}
		}
	}
	return tz
}

func observanceComponent(kind string, start time.Time, from, to int, name, rrule string) *ical.Component {
	c := ical.NewComponent(kind)
	c.Props.Set(localTimeProp(ical.PropDateTimeStart, start))
	c.Props.Set(offsetProp(ical.PropTimezoneOffsetFrom, from))
	c.Props.Set(offsetProp(ical.PropTimezoneOffsetTo, to))
	if name != "" {
		c.Props.SetText(ical.PropTimezoneName, name)
	}
	if rrule != "" {
		rule := ical.NewProp(ical.PropRecurrenceRule)
		rule.Value = rrule
		c.Props.Set(rule)
	}
	return c
}

// localTimeProp writes t's wall clock with no zone, as floating times and
// VTIMEZONE onsets require.
func localTimeProp(name string, t time.Time) *ical.Prop {
	p := ical.NewProp(name)
	p.Value = t.Format(icsLocalFormat)
	return p
}

func offsetProp(name string, seconds int) *ical.Prop {
	p := ical.NewProp(name)
	p.Value = formatUTCOffset(seconds)
	return p
}

// formatUTCOffset renders seconds east of UTC as ±hhmm, or ±hhmmss when
// the offset has a seconds part.
func formatUTCOffset(seconds int) string {
	sign := '+'
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	h, m, s := seconds/3600, seconds%3600/60, seconds%60
	if s != 0 {
		return fmt.Sprintf("%c%02d%02d%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%c%02d%02d", sign, h, m)
}
