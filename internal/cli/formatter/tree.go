package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/parish/internal/domain"
	"github.com/alexanderramin/parish/internal/entity"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title string
	ID    string
	Kind  domain.EntityKind
	Level int
	// Open[i] is true when the ancestor at level i+1 has later siblings,
	// so its guide line continues past this row.
	Open   []bool
	IsLast bool
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// TreeItems flattens the subtree under rootID in display order. maxDepth
// < 0 means unlimited.
func TreeItems(s entity.Store, rootID string, maxDepth int) []TreeItem {
	var items []TreeItem
	var visit func(id string, level int, open []bool, last bool)
	seen := make(map[string]bool)
	visit = func(id string, level int, open []bool, last bool) {
		n, ok := s.Get(id)
		if !ok || seen[id] {
			return
		}
		seen[id] = true
		item := TreeItem{
			Title:  n.Title,
			ID:     n.ID,
			Kind:   n.Kind,
			Level:  level,
			Open:   append([]bool(nil), open...),
			IsLast: last,
		}
		if n.Attributes != nil {
			item.Detail = n.Attributes.Schedule
		}
		items = append(items, item)
		if maxDepth >= 0 && level >= maxDepth {
			return
		}

		children := s.Children(id)
		childOpen := open
		if level > 0 {
			childOpen = append(append([]bool(nil), open...), !last)
		}
		for i, c := range children {
			visit(c.ID, level+1, childOpen, i == len(children)-1)
		}
	}
	visit(rootID, 0, nil, true)
	return items
}

// RenderTree renders TreeItems as an indented tree using box-drawing
// connectors. Ids are shown dimmed after the title and details are
// right-aligned as badges.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	for idx, item := range items {
		var prefix strings.Builder
		if item.Level > 0 {
			for i := 0; i < item.Level-1; i++ {
				if i < len(item.Open) && item.Open[i] {
					prefix.WriteString(treePipe)
				} else {
					prefix.WriteString(treeBlank)
				}
			}
			if item.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}

		title := KindStyle(item.Kind).Render(item.Title)
		if item.Level == 0 {
			title = StyleHeader.Render(item.Title)
		}
		content := Dim(prefix.String()) + title + " " + Dim("("+item.ID+")")
		lines[idx].content = content
		if item.Detail != "" {
			lines[idx].badge = StyleBlue.Render(fmt.Sprintf("[ %s ]", item.Detail))
		}
		maxContentWidth = max(maxContentWidth, lipgloss.Width(content))
	}

	var b strings.Builder
	for _, li := range lines {
		b.WriteString(li.content)
		if li.badge != "" {
			b.WriteString(strings.Repeat(" ", maxContentWidth-lipgloss.Width(li.content)) + "  " + li.badge)
		}
		b.WriteString("\n")
	}
	return b.String()
}
