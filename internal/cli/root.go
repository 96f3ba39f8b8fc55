package cli

import (
	"time"

	"github.com/alexanderramin/parish/internal/appstate"
	"github.com/alexanderramin/parish/internal/locale"
	"github.com/alexanderramin/parish/internal/schedule"
	"github.com/alexanderramin/parish/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all services and shared state used by CLI commands.
type App struct {
	Directory   service.DirectoryService
	Schedule    service.ScheduleService
	Preferences service.PreferencesService
	Import      service.ImportService

	Translator *locale.Translator
	Clock      schedule.Clock
	State      *appstate.State
	// MassDuration is how long a Mass counts as live. Zero means the default.
	MassDuration time.Duration

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) translator() *locale.Translator {
	if a.Translator == nil {
		a.Translator = locale.MustNew(locale.DefaultLanguage)
	}
	return a.Translator
}

func (a *App) clock() schedule.Clock {
	if a.Clock == nil {
		a.Clock = schedule.RealClock{}
	}
	return a.Clock
}

func (a *App) state() *appstate.State {
	if a.State == nil {
		a.State = appstate.New()
	}
	return a.State
}

// NewRootCmd creates the top-level "parish" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "parish",
		Short:         "Parish directory and Mass schedule",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newEntityCmd(app),
		newMassCmd(app),
		newPrefsCmd(app),
		newImportCmd(app),
		newExportCmd(app),
		newSeedCmd(app),
	)

	return root
}
