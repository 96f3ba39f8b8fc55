package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/parish/internal/cli/formatter"
	"github.com/alexanderramin/parish/internal/domain"
	"github.com/alexanderramin/parish/internal/entity"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// parishHuhTheme returns a huh theme using the Gruvbox palette from the formatter.
func parishHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// entityDraft holds the raw values collected by flags or the add form.
type entityDraft struct {
	ParentID    string
	Kind        string
	Title       string
	ID          string
	Description string
}

// parentOptions lists every reachable entity, indented by depth, in tree order.
func parentOptions(st entity.Store) []huh.Option[string] {
	var options []huh.Option[string]
	root, ok := st.Root()
	if !ok {
		return options
	}
	st.Walk(root.ID, func(n domain.EntityNode, depth int) bool {
		label := fmt.Sprintf("%s%s (%s)", strings.Repeat("  ", depth), n.Title, n.Kind)
		options = append(options, huh.NewOption(label, n.ID))
		return true
	})
	return options
}

func kindOptions() []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(domain.EntityKinds))
	for _, k := range domain.EntityKinds {
		options = append(options, huh.NewOption(string(k), string(k)))
	}
	return options
}

func validateTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("title is required")
	}
	return nil
}

// newEntityForm builds the add-entity form. Fields already set on draft are
// used as the initial values.
func newEntityForm(st entity.Store, draft *entityDraft) *huh.Form {
	if draft.Kind == "" {
		draft.Kind = string(domain.KindActivity)
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("Youth Choir").
			Value(&draft.Title).
			Validate(validateTitle),
		huh.NewSelect[string]().
			Title("Kind").
			Options(kindOptions()...).
			Value(&draft.Kind),
		huh.NewText().
			Title("Description").
			Description("Optional").
			Value(&draft.Description),
	}

	if opts := parentOptions(st); len(opts) > 0 {
		if draft.ParentID == "" {
			draft.ParentID = opts[0].Value
		}
		fields = append(fields, huh.NewSelect[string]().
			Title("Parent").
			Options(opts...).
			Height(10).
			Value(&draft.ParentID))
	}

	return huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(parishHuhTheme()).
		WithShowHelp(false)
}
