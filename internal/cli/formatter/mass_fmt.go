package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/parish/internal/domain"
	"github.com/alexanderramin/parish/internal/locale"
	"github.com/alexanderramin/parish/internal/schedule"
)

// FormatOccurrence renders one occurrence as "Sunday 09:00  Label  (Today)".
func FormatOccurrence(occ domain.Occurrence, now time.Time, tr *locale.Translator) string {
	return fmt.Sprintf("%s %s  %s  %s",
		tr.Weekday(occ.Slot.Day),
		Bold(occ.Slot.Clock()),
		occ.Slot.Label,
		Dim("("+RelativeDay(occ.At, now, tr.Weekday)+")"),
	)
}

// FormatNext renders the next Mass with its countdown.
func FormatNext(occ domain.Occurrence, cd domain.Countdown, now time.Time, tr *locale.Translator) string {
	var b strings.Builder
	b.WriteString(FormatOccurrence(occ, now, tr) + "\n\n")
	b.WriteString(StyleYellowBold.Render(tr.Msgf(locale.MsgStartsIn, map[string]any{"Countdown": FormatCountdown(cd)})))
	return RenderBox(tr.Msg(locale.MsgNextMass), b.String())
}

// FormatLive renders the live banner, or the not-live line.
func FormatLive(occ domain.Occurrence, live bool, tr *locale.Translator) string {
	if !live {
		return Dim("○ "+tr.Msg(locale.MsgNotLive)) + "\n"
	}
	return StyleGreen.Render("● "+tr.Msg(locale.MsgLive)) +
		fmt.Sprintf("  %s %s\n", Bold(occ.Slot.Label), Dim("since "+occ.Slot.Clock()))
}

// FormatCountdownLabels renders a countdown with localised unit names,
// one unit per column, for the watch view.
func FormatCountdownLabels(c domain.Countdown, tr *locale.Translator) string {
	units := []struct {
		v  int
		id string
	}{
		{c.Days, locale.MsgDays},
		{c.Hours, locale.MsgHours},
		{c.Minutes, locale.MsgMinutes},
		{c.Seconds, locale.MsgSeconds},
	}
	nums := make([]string, 0, len(units))
	labels := make([]string, 0, len(units))
	for _, u := range units {
		label := tr.Msg(u.id)
		width := max(len([]rune(label)), 2)
		nums = append(nums, StyleYellowBold.Render(fmt.Sprintf("%-*s", width, fmt.Sprintf("%02d", u.v))))
		labels = append(labels, Dim(fmt.Sprintf("%-*s", width, label)))
	}
	return strings.Join(nums, "  ") + "\n" + strings.Join(labels, "  ")
}

// FormatWeek renders the template grouped by day, Sunday first, keeping
// template order within a day.
func FormatWeek(t schedule.Template, tr *locale.Translator) string {
	if len(t) == 0 {
		return Dim(tr.Msg(locale.MsgNoMass)) + "\n"
	}
	var rows [][]string
	for d := domain.Sunday; d <= domain.Saturday; d++ {
		for i, s := range t.On(d) {
			day := ""
			if i == 0 {
				day = tr.Weekday(d)
			}
			rows = append(rows, []string{day, s.Clock(), s.Label})
		}
	}
	return RenderBox(tr.Msg(locale.MsgWeek), strings.TrimRight(RenderTable([]string{"DAY", "TIME", "MASS"}, rows), "\n"))
}

// FormatUpcoming renders occurrences as a numbered list.
func FormatUpcoming(occs []domain.Occurrence, now time.Time, tr *locale.Translator) string {
	if len(occs) == 0 {
		return Dim(tr.Msg(locale.MsgNoMass)) + "\n"
	}
	var b strings.Builder
	for i, o := range occs {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim(fmt.Sprintf("%2d.", i+1)), FormatOccurrence(o, now, tr)))
	}
	return b.String()
}
