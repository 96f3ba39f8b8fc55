package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/parish/internal/domain"
)

// FormatEntity renders one node with its attributes and children.
func FormatEntity(n domain.EntityNode, children []domain.EntityNode) string {
	const w = 8
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s\n\n", Bold(n.Title), KindBadge(n.Kind)))
	b.WriteString(Field("id", w, n.ID))
	b.WriteString(Field("parent", w, n.ParentOr(Dim("(root)"))))
	if n.Description != "" {
		b.WriteString(Field("about", w, n.Description))
	}
	if a := n.Attributes; a != nil {
		for _, kv := range [][2]string{
			{"contact", a.Contact},
			{"email", a.Email},
			{"phone", a.Phone},
			{"schedule", a.Schedule},
			{"location", a.Location},
			{"ages", a.AgeGroup},
			{"needs", strings.Join(a.Requirements, ", ")},
		} {
			if kv[1] != "" {
				b.WriteString(Field(kv[0], w, kv[1]))
			}
		}
	}

	if len(children) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Children"))
		b.WriteString("\n")
		b.WriteString(FormatEntityTable(children))
	}
	return RenderBox("Entity", strings.TrimRight(b.String(), "\n"))
}

// FormatEntityTable renders nodes as an ID/TITLE/KIND/CHILDREN table.
func FormatEntityTable(nodes []domain.EntityNode) string {
	if len(nodes) == 0 {
		return Dim("(none)") + "\n"
	}
	rows := make([][]string, 0, len(nodes))
	for _, n := range nodes {
		rows = append(rows, []string{
			TruncID(n.ID),
			n.Title,
			KindBadge(n.Kind),
			fmt.Sprintf("%d", len(n.ChildIDs)),
		})
	}
	return RenderTable([]string{"ID", "TITLE", "KIND", "CHILDREN"}, rows)
}

// FormatPath renders a root-first path as a breadcrumb.
func FormatPath(path []domain.EntityNode) string {
	parts := make([]string, 0, len(path))
	for i, n := range path {
		if i == len(path)-1 {
			parts = append(parts, Bold(n.Title))
			continue
		}
		parts = append(parts, n.Title)
	}
	return strings.Join(parts, Dim(" › ")) + "\n"
}

// FormatProblems renders validation failures one per line.
func FormatProblems(err error) string {
	var b strings.Builder
	b.WriteString(StyleRed.Render("✖ directory has problems") + "\n")
	for _, line := range strings.Split(err.Error(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			b.WriteString("  " + Dim("-") + " " + line + "\n")
		}
	}
	return b.String()
}
