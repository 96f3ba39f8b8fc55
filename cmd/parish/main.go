package main

import (
	"context"
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/alexanderramin/parish/internal/appstate"
	"github.com/alexanderramin/parish/internal/cli"
	"github.com/alexanderramin/parish/internal/config"
	"github.com/alexanderramin/parish/internal/db"
	"github.com/alexanderramin/parish/internal/domain"
	"github.com/alexanderramin/parish/internal/locale"
	"github.com/alexanderramin/parish/internal/repository"
	"github.com/alexanderramin/parish/internal/schedule"
	"github.com/alexanderramin/parish/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	uow := db.NewSQLiteUnitOfWork(database)
	clock := schedule.RealClock{Location: cfg.Location}

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	prefsSvc := service.NewPreferencesService(uow, repository.NewSQLiteRepos, observers...)

	// Stored preferences seed the state; PARISH_LANG wins over the stored language.
	state := appstate.New()
	prefs, err := prefsSvc.Get(context.Background())
	if err != nil {
		return err
	}
	state.Preferences = prefs
	tr, err := locale.New(domain.CoalesceStr(cfg.Language, prefs.Language))
	if err != nil {
		return err
	}

	app := &cli.App{
		Directory:    service.NewDirectoryService(uow, repository.NewSQLiteRepos, observers...),
		Schedule:     service.NewScheduleService(uow, repository.NewSQLiteRepos, clock, cfg.MassDuration, observers...),
		Preferences:  prefsSvc,
		Import:       service.NewImportService(uow, repository.NewSQLiteRepos, observers...),
		Translator:   tr,
		Clock:        clock,
		State:        state,
		MassDuration: cfg.MassDuration,
	}

	// Detect interactive terminal for forms and the live watch view.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
