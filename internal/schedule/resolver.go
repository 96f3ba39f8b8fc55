package schedule

import (
	"sort"
	"time"

	"github.com/alexanderramin/parish/internal/domain"
)

// DefaultDuration is how long an occurrence counts as live.
const DefaultDuration = time.Hour

// lookaheadDays bounds the forward search. Seven days reaches today's
// weekday again next week.
const lookaheadDays = 7

const (
	msPerDay    = 86_400_000
	msPerHour   = 3_600_000
	msPerMinute = 60_000
	msPerSecond = 1_000
)

// FindNextOccurrence returns the next slot strictly after now. Today's
// slots are scanned in template order first; failing that, the first
// template entry for the nearest following weekday that has any entry is
// returned. Dates are computed in now's location.
func FindNextOccurrence(t Template, now time.Time) (domain.Occurrence, bool) {
	today := domain.WeekdayOf(now)
	for _, s := range t {
		if s.Day != today {
			continue
		}
		if at := s.On(now); at.After(now) {
			return domain.Occurrence{Slot: s, At: at}, true
		}
	}

	for i := 1; i <= lookaheadDays; i++ {
		day := now.AddDate(0, 0, i)
		slots := t.On(domain.WeekdayOf(day))
		if len(slots) > 0 {
			return domain.Occurrence{Slot: slots[0], At: slots[0].On(day)}, true
		}
	}
	return domain.Occurrence{}, false
}

// FindEarliestOccurrence returns the chronologically earliest slot strictly
// after now within the lookahead window, regardless of template order.
func FindEarliestOccurrence(t Template, now time.Time) (domain.Occurrence, bool) {
	var best domain.Occurrence
	found := false
	for i := 0; i <= lookaheadDays; i++ {
		day := now.AddDate(0, 0, i)
		for _, s := range t.On(domain.WeekdayOf(day)) {
			at := s.On(day)
			if !at.After(now) {
				continue
			}
			if !found || at.Before(best.At) {
				best = domain.Occurrence{Slot: s, At: at}
				found = true
			}
		}
	}
	return best, found
}

// Upcoming returns up to n occurrences strictly after now in chronological order.
func Upcoming(t Template, now time.Time, n int) []domain.Occurrence {
	if n <= 0 || len(t) == 0 {
		return nil
	}
	var out []domain.Occurrence
	for i := 0; len(out) < n && i <= lookaheadDays*(n+1); i++ {
		day := now.AddDate(0, 0, i)
		var todays []domain.Occurrence
		for _, s := range t.On(domain.WeekdayOf(day)) {
			if at := s.On(day); at.After(now) {
				todays = append(todays, domain.Occurrence{Slot: s, At: at})
			}
		}
		sort.SliceStable(todays, func(a, b int) bool { return todays[a].At.Before(todays[b].At) })
		out = append(out, todays...)
	}
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// CurrentOccurrence returns today's slot whose window [start, start+d)
// contains now. A non-positive d means DefaultDuration.
func CurrentOccurrence(t Template, now time.Time, d time.Duration) (domain.Occurrence, bool) {
	if d <= 0 {
		d = DefaultDuration
	}
	for _, s := range t.On(domain.WeekdayOf(now)) {
		start := s.On(now)
		if !now.Before(start) && now.Before(start.Add(d)) {
			return domain.Occurrence{Slot: s, At: start}, true
		}
	}
	return domain.Occurrence{}, false
}

// IsOccurring reports whether any of today's slots is live at now.
func IsOccurring(t Template, now time.Time, d time.Duration) bool {
	_, ok := CurrentOccurrence(t, now, d)
	return ok
}

// TimeRemaining splits target-now into whole days, hours, minutes and
// seconds. Past or equal targets yield a zero countdown.
func TimeRemaining(target, now time.Time) domain.Countdown {
	ms := target.Sub(now).Milliseconds()
	if ms <= 0 {
		return domain.Countdown{}
	}
	return domain.Countdown{
		Days:    int(ms / msPerDay),
		Hours:   int(ms % msPerDay / msPerHour),
		Minutes: int(ms % msPerHour / msPerMinute),
		Seconds: int(ms % msPerMinute / msPerSecond),
	}
}
