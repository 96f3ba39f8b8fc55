package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/parish/internal/cli/formatter"
	"github.com/alexanderramin/parish/internal/domain"
	"github.com/alexanderramin/parish/internal/service"
	"github.com/spf13/cobra"
)

func newPrefsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "prefs",
		Aliases: []string{"preferences"},
		Short:   "Show or change persisted preferences",
	}

	cmd.AddCommand(
		newPrefsGetCmd(app),
		newPrefsSetCmd(app),
	)

	return cmd
}

func newPrefsGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the current preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Preferences.Get(cmd.Context())
			if err != nil {
				return err
			}
			app.state().Preferences = p
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPreferences(p))
			return nil
		},
	}
}

func newPrefsSetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change one or more preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			patch := service.PreferencesPatch{
				Language:      changedString(fs, "language"),
				ReducedMotion: changedBool(fs, "reduced-motion"),
				FontScale:     changedFloat(fs, "font-scale"),
			}
			if v := changedString(fs, "theme"); v != nil {
				patch.Theme = domain.Ptr(domain.Theme(*v))
			}
			if !anyChanged(fs, "theme", "language", "reduced-motion", "font-scale") {
				return errors.New("nothing to change; pass --theme, --language, --reduced-motion or --font-scale")
			}

			p, err := app.Preferences.Update(cmd.Context(), patch)
			if err != nil {
				return err
			}
			app.state().Preferences = p
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPreferences(p))
			return nil
		},
	}

	cmd.Flags().String("theme", "", "Colour theme (light|dark|system)")
	cmd.Flags().String("language", "", "Interface language (BCP 47, e.g. en or es)")
	cmd.Flags().Bool("reduced-motion", false, "Disable animated output")
	cmd.Flags().Float64("font-scale", 1.0, "Relative font scale (0.5-3)")

	return cmd
}
