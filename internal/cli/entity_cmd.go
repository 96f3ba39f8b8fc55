package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/parish/internal/cli/formatter"
	"github.com/alexanderramin/parish/internal/domain"
	"github.com/alexanderramin/parish/internal/repository"
	"github.com/spf13/cobra"
)

func newEntityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entity",
		Aliases: []string{"e"},
		Short:   "Browse and edit the parish directory",
	}

	cmd.AddCommand(
		newEntityGetCmd(app),
		newEntityChildrenCmd(app),
		newEntityParentCmd(app),
		newEntityPathCmd(app),
		newEntityKindCmd(app),
		newEntityTreeCmd(app),
		newEntityOrphansCmd(app),
		newEntityCheckCmd(app),
		newEntityAddCmd(app),
		newEntityUpdateCmd(app),
		newEntityRemoveCmd(app),
		newEntityMoveCmd(app),
	)

	return cmd
}

// emptyDirectoryHint turns not-found errors on an empty directory into a
// pointer at the seed command.
func emptyDirectoryHint(app *App, cmd *cobra.Command, err error) error {
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	st, snapErr := app.Directory.Snapshot(cmd.Context())
	if snapErr == nil && st.Len() == 0 {
		return fmt.Errorf("%w (the directory is empty; run 'parish seed' or 'parish import FILE')", err)
	}
	return err
}

func newEntityGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show an entity and its children",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.Directory.Get(cmd.Context(), args[0])
			if err != nil {
				return emptyDirectoryHint(app, cmd, err)
			}
			children, err := app.Directory.Children(cmd.Context(), n.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEntity(n, children))
			return nil
		},
	}
}

func newEntityChildrenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "children ID",
		Short: "List the direct children of an entity in display order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			children, err := app.Directory.Children(cmd.Context(), args[0])
			if err != nil {
				return emptyDirectoryHint(app, cmd, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEntityTable(children))
			return nil
		},
	}
}

func newEntityParentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "parent ID",
		Short: "Show the parent of an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Directory.Parent(cmd.Context(), args[0])
			if err != nil {
				return emptyDirectoryHint(app, cmd, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEntityTable([]domain.EntityNode{p}))
			return nil
		},
	}
}

func newEntityPathCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path ID",
		Short: "Show the breadcrumb from the root to an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := app.Directory.Path(cmd.Context(), args[0])
			if err != nil {
				return emptyDirectoryHint(app, cmd, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPath(path))
			return nil
		},
	}
}

func newEntityKindCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "kind KIND",
		Short:     "List every entity of one kind",
		Args:      cobra.ExactArgs(1),
		ValidArgs: kindNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.ParseEntityKind(args[0])
			if err != nil {
				return err
			}
			nodes, err := app.Directory.ByKind(cmd.Context(), kind)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEntityTable(nodes))
			return nil
		},
	}
}

func newEntityTreeCmd(app *App) *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:   "tree [ID]",
		Short: "Render the directory, or the subtree under ID",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.Directory.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			var rootID string
			if len(args) == 1 {
				rootID = args[0]
				if !st.Has(rootID) {
					return emptyDirectoryHint(app, cmd, fmt.Errorf("entity %q: %w", rootID, repository.ErrNotFound))
				}
			} else {
				root, ok := st.Root()
				if !ok {
					return emptyDirectoryHint(app, cmd, fmt.Errorf("directory root: %w", repository.ErrNotFound))
				}
				rootID = root.ID
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTree(formatter.TreeItems(st, rootID, depth)))
			return nil
		},
	}

	cmd.Flags().IntVar(&depth, "depth", -1, "Maximum depth to show (-1 for all)")
	return cmd
}

func newEntityOrphansCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "orphans",
		Short: "List entities that cannot be reached from the root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orphans, err := app.Directory.Orphans(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEntityTable(orphans))
			return nil
		},
	}
}

func newEntityCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the directory tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.Directory.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			if err := st.Validate(); err != nil {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProblems(err))
				return errors.New("directory validation failed")
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("directory is valid (%d entities)", st.Len())))
			return nil
		},
	}
}

func kindNames() []string {
	names := make([]string, 0, len(domain.EntityKinds))
	for _, k := range domain.EntityKinds {
		names = append(names, string(k))
	}
	return names
}

func newEntityAddCmd(app *App) *cobra.Command {
	var parentID, kind, title, id, description string
	var interactive bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an entity as the last child of a parent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := entityDraft{ParentID: parentID, Kind: kind, Title: title, ID: id, Description: description}

			if interactive || (app.interactive() && (title == "" || parentID == "" || kind == "")) {
				st, err := app.Directory.Snapshot(cmd.Context())
				if err != nil {
					return err
				}
				if err := newEntityForm(st, &draft).Run(); err != nil {
					return fmt.Errorf("entity form: %w", err)
				}
			}

			var missing []string
			for _, f := range []struct{ name, v string }{{"parent", draft.ParentID}, {"kind", draft.Kind}, {"title", draft.Title}} {
				if strings.TrimSpace(f.v) == "" {
					missing = append(missing, f.name)
				}
			}
			if len(missing) > 0 {
				return fmt.Errorf("required flag(s) %q not set", strings.Join(missing, `", "`))
			}

			k, err := domain.ParseEntityKind(draft.Kind)
			if err != nil {
				return err
			}
			added, err := app.Directory.Add(cmd.Context(), draft.ParentID, domain.EntityNode{
				ID:          strings.TrimSpace(draft.ID),
				Kind:        k,
				Title:       draft.Title,
				Description: strings.TrimSpace(draft.Description),
			})
			if err != nil {
				return emptyDirectoryHint(app, cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Added %s (%s) under %s", added.Title, added.ID, draft.ParentID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&parentID, "parent", "", "Parent entity ID")
	cmd.Flags().StringVar(&kind, "kind", "", "Entity kind ("+strings.Join(kindNames(), "|")+")")
	cmd.Flags().StringVar(&title, "title", "", "Entity title")
	cmd.Flags().StringVar(&id, "id", "", "Entity ID (generated when empty)")
	cmd.Flags().StringVar(&description, "description", "", "Entity description")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill in the entity with a form")

	return cmd
}

func newEntityUpdateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update an entity's title, description, kind or attributes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			patch := domain.EntityPatch{
				Title:       changedString(fs, "title"),
				Description: changedString(fs, "description"),
			}
			if k := changedString(fs, "kind"); k != nil {
				kind, err := domain.ParseEntityKind(*k)
				if err != nil {
					return err
				}
				patch.Kind = &kind
			}

			attrFlags := []string{"contact", "email", "phone", "schedule", "location"}
			if anyChanged(fs, attrFlags...) {
				current, err := app.Directory.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				var a domain.Attributes
				if current.Attributes != nil {
					a = *current.Attributes
				}
				a.Contact = domain.CoalescePtr(a.Contact, changedString(fs, "contact"))
				a.Email = domain.CoalescePtr(a.Email, changedString(fs, "email"))
				a.Phone = domain.CoalescePtr(a.Phone, changedString(fs, "phone"))
				a.Schedule = domain.CoalescePtr(a.Schedule, changedString(fs, "schedule"))
				a.Location = domain.CoalescePtr(a.Location, changedString(fs, "location"))
				patch.Attributes = &a
			}

			if patch.IsEmpty() {
				return errors.New("nothing to update; pass at least one of --title, --description, --kind or an attribute flag")
			}

			updated, err := app.Directory.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return emptyDirectoryHint(app, cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Updated %s (%s)", updated.Title, updated.ID)))
			return nil
		},
	}

	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("kind", "", "New kind")
	cmd.Flags().String("contact", "", "Contact person")
	cmd.Flags().String("email", "", "Contact email")
	cmd.Flags().String("phone", "", "Contact phone")
	cmd.Flags().String("schedule", "", "Meeting schedule, e.g. \"Thursdays 7pm\"")
	cmd.Flags().String("location", "", "Meeting location")

	return cmd
}

func newEntityRemoveCmd(app *App) *cobra.Command {
	var cascade bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := app.Directory.Remove(cmd.Context(), args[0], cascade)
			if err != nil {
				return emptyDirectoryHint(app, cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Removed %s (%d entities)", args[0], removed)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&cascade, "cascade", false, "Also remove every descendant")
	return cmd
}

func newEntityMoveCmd(app *App) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "move ID",
		Short: "Move an entity under a new parent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Directory.Move(cmd.Context(), args[0], to); err != nil {
				return emptyDirectoryHint(app, cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Moved %s under %s", args[0], to)))
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "New parent entity ID")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
