package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/parish/internal/domain"
	"github.com/alexanderramin/parish/internal/repository"
	"github.com/alexanderramin/parish/internal/schedule"
	"github.com/alexanderramin/parish/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-06-15 is a Sunday.
func sundayAt(hour, minute int) time.Time {
	return time.Date(2025, 6, 15, hour, minute, 0, 0, time.UTC)
}

func newScheduleService(t *testing.T, now time.Time) ScheduleService {
	t.Helper()
	database := testutil.NewTestDB(t)
	return NewScheduleService(testutil.NewTestUoW(database), repository.NewSQLiteRepos, schedule.FixedClock(now), 0)
}

var testTemplate = schedule.Template{
	{Day: domain.Sunday, Hour: 9, Minute: 0, Label: "Morning"},
	{Day: domain.Sunday, Hour: 18, Minute: 0, Label: "Evening"},
	{Day: domain.Wednesday, Hour: 19, Minute: 30, Label: "Midweek"},
}

func TestSchedule_DefaultsWhenNothingStored(t *testing.T) {
	svc := newScheduleService(t, sundayAt(8, 0))

	tmpl, err := svc.Template(context.Background())
	require.NoError(t, err)
	assert.Equal(t, schedule.DefaultMassTimes(), tmpl)
}

func TestSchedule_ReplaceThenNext(t *testing.T) {
	svc := newScheduleService(t, sundayAt(10, 0))
	ctx := context.Background()
	require.NoError(t, svc.Replace(ctx, testTemplate))

	occ, ok, err := svc.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Evening", occ.Slot.Label)
	assert.Equal(t, sundayAt(18, 0), occ.At)

	occ, ok, err = svc.Earliest(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Evening", occ.Slot.Label)
}

func TestSchedule_LiveAndCountdown(t *testing.T) {
	svc := newScheduleService(t, sundayAt(9, 30))
	ctx := context.Background()
	require.NoError(t, svc.Replace(ctx, testTemplate))

	occ, live, err := svc.Live(ctx)
	require.NoError(t, err)
	require.True(t, live)
	assert.Equal(t, "Morning", occ.Slot.Label)

	next, ok, err := svc.Countdown(ctx, false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Evening", next.Occurrence.Slot.Label)
	assert.Equal(t, domain.Countdown{Hours: 8, Minutes: 30}, next.Remaining)
	assert.Equal(t, sundayAt(9, 30), next.ResolvedAt)
}

// advancingClock moves forward a second on every reading.
type advancingClock struct {
	now time.Time
}

func (c *advancingClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(time.Second)
	return t
}

func TestSchedule_CountdownReadsClockOnce(t *testing.T) {
	database := testutil.NewTestDB(t)
	clock := &advancingClock{now: sundayAt(10, 0)}
	svc := NewScheduleService(testutil.NewTestUoW(database), repository.NewSQLiteRepos, clock, 0)
	ctx := context.Background()
	require.NoError(t, svc.Replace(ctx, testTemplate))

	next, ok, err := svc.Countdown(ctx, true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Evening", next.Occurrence.Slot.Label)
	assert.Equal(t, sundayAt(10, 0), next.ResolvedAt)
	assert.Equal(t, domain.Countdown{Hours: 8}, next.Remaining, "remaining time uses the same reading")
	assert.Equal(t, sundayAt(10, 0).Add(time.Second), clock.now)
}

func TestSchedule_CountdownRollsToNextDay(t *testing.T) {
	svc := newScheduleService(t, sundayAt(10, 0))
	ctx := context.Background()
	require.NoError(t, svc.Replace(ctx, schedule.Template{{Day: domain.Monday, Hour: 8, Label: "Daily"}}))

	next, ok, err := svc.Countdown(ctx, false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Daily", next.Occurrence.Slot.Label)
	assert.Equal(t, domain.Countdown{Hours: 22}, next.Remaining)
}

func TestSchedule_Upcoming(t *testing.T) {
	svc := newScheduleService(t, sundayAt(10, 0))
	ctx := context.Background()
	require.NoError(t, svc.Replace(ctx, testTemplate))

	occs, err := svc.Upcoming(ctx, 3)
	require.NoError(t, err)
	require.Len(t, occs, 3)
	assert.Equal(t, "Evening", occs[0].Slot.Label)
	assert.Equal(t, "Midweek", occs[1].Slot.Label)
	assert.Equal(t, "Morning", occs[2].Slot.Label)
}

func TestSchedule_ReplaceRejectsEmptyAndInvalid(t *testing.T) {
	svc := newScheduleService(t, sundayAt(10, 0))
	ctx := context.Background()

	assert.ErrorIs(t, svc.Replace(ctx, nil), schedule.ErrInvalidTemplate)
	bad := schedule.Template{{Day: domain.Monday, Hour: 24, Label: "x"}}
	assert.ErrorIs(t, svc.Replace(ctx, bad), schedule.ErrInvalidTemplate)
}

func TestSchedule_ExportICSUsesClock(t *testing.T) {
	svc := newScheduleService(t, sundayAt(10, 0))
	ctx := context.Background()
	require.NoError(t, svc.Replace(ctx, testTemplate))

	var buf bytes.Buffer
	require.NoError(t, svc.ExportICS(ctx, &buf, schedule.ICSOptions{CalendarName: "Test"}))
	out := buf.String()
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "SUMMARY:Midweek")
	assert.Contains(t, out, "RRULE:FREQ=WEEKLY;BYDAY=WE")
}
