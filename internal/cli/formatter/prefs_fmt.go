package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/parish/internal/domain"
)

func FormatPreferences(p domain.Preferences) string {
	const w = 14
	motion := "off"
	if p.ReducedMotion {
		motion = "on"
	}
	var b strings.Builder
	b.WriteString(Field("theme", w, string(p.Theme)))
	b.WriteString(Field("language", w, p.Language))
	b.WriteString(Field("reduced motion", w, motion))
	b.WriteString(Field("font scale", w, fmt.Sprintf("%.2f", p.FontScale)))
	return RenderBox("Preferences", strings.TrimRight(b.String(), "\n"))
}
