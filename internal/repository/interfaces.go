package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/parish/internal/db"
	"github.com/alexanderramin/parish/internal/domain"
	"github.com/alexanderramin/parish/internal/entity"
	"github.com/alexanderramin/parish/internal/schedule"
)

// ErrNotFound is wrapped by every lookup that finds nothing.
var ErrNotFound = errors.New("not found")

// EntityRepo persists whole directory snapshots.
type EntityRepo interface {
	SaveSnapshot(ctx context.Context, s entity.Store) error
	LoadSnapshot(ctx context.Context) (entity.Store, error)
	Count(ctx context.Context) (int, error)
}

// ScheduleRepo persists the weekly Mass template.
type ScheduleRepo interface {
	Replace(ctx context.Context, t schedule.Template) error
	Load(ctx context.Context) (schedule.Template, error)
}

// PreferencesRepo persists the UI preferences slice.
type PreferencesRepo interface {
	Get(ctx context.Context) (domain.Preferences, error)
	Upsert(ctx context.Context, p domain.Preferences) error
}

// Repos bundles the repositories bound to one DBTX.
type Repos struct {
	Entities    EntityRepo
	Schedule    ScheduleRepo
	Preferences PreferencesRepo
}

// Factory builds Repos over a DBTX, typically the *sql.Tx of a unit of work.
type Factory func(tx db.DBTX) Repos

// NewSQLiteRepos is the SQLite Factory.
func NewSQLiteRepos(tx db.DBTX) Repos {
	return Repos{
		Entities:    NewSQLiteEntityRepo(tx),
		Schedule:    NewSQLiteScheduleRepo(tx),
		Preferences: NewSQLitePreferencesRepo(tx),
	}
}
