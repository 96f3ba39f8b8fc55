package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/parish/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Field renders one "LABEL  value" line with the label dimmed and padded to width.
func Field(label string, width int, value string) string {
	pad := max(width-lipgloss.Width(label), 0)
	return fmt.Sprintf("  %s%s  %s\n", Dim(strings.ToUpper(label)), strings.Repeat(" ", pad), value)
}

// FormatCountdown renders a countdown as "1d 01h 01m 01s". The day part is
// omitted when zero.
func FormatCountdown(c domain.Countdown) string {
	hms := fmt.Sprintf("%02dh %02dm %02ds", c.Hours, c.Minutes, c.Seconds)
	if c.Days > 0 {
		return fmt.Sprintf("%dd %s", c.Days, hms)
	}
	return hms
}

// RelativeDay names at relative to now: "Today", "Tomorrow", or the
// weekday name produced by weekday.
func RelativeDay(at, now time.Time, weekday func(domain.Weekday) string) string {
	y1, m1, d1 := now.Date()
	y2, m2, d2 := at.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	ty, tm, td := now.AddDate(0, 0, 1).Date()
	if y2 == ty && m2 == tm && d2 == td {
		return "Tomorrow"
	}
	return weekday(domain.WeekdayOf(at))
}

// TruncID returns the first 8 characters of an ID, dimmed. Short
// human-chosen ids are shown whole.
func TruncID(id string) string {
	if len(id) > 8 && strings.Count(id, "-") == 4 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}
