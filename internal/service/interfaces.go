package service

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/parish/internal/domain"
	"github.com/alexanderramin/parish/internal/entity"
	"github.com/alexanderramin/parish/internal/importer"
	"github.com/alexanderramin/parish/internal/schedule"
)

type DirectoryService interface {
	Snapshot(ctx context.Context) (entity.Store, error)
	Get(ctx context.Context, id string) (domain.EntityNode, error)
	Children(ctx context.Context, id string) ([]domain.EntityNode, error)
	Parent(ctx context.Context, id string) (domain.EntityNode, error)
	Path(ctx context.Context, id string) ([]domain.EntityNode, error)
	ByKind(ctx context.Context, kind domain.EntityKind) ([]domain.EntityNode, error)
	Orphans(ctx context.Context) ([]domain.EntityNode, error)
	Validate(ctx context.Context) error

	Add(ctx context.Context, parentID string, n domain.EntityNode) (domain.EntityNode, error)
	Update(ctx context.Context, id string, patch domain.EntityPatch) (domain.EntityNode, error)
	Remove(ctx context.Context, id string, cascade bool) (removed int, err error)
	Move(ctx context.Context, id, newParentID string) error
}

type ScheduleService interface {
	// Template returns the stored template, or the built-in Mass times
	// when none has been saved.
	Template(ctx context.Context) (schedule.Template, error)
	Next(ctx context.Context) (domain.Occurrence, bool, error)
	Earliest(ctx context.Context) (domain.Occurrence, bool, error)
	Live(ctx context.Context) (domain.Occurrence, bool, error)
	// Countdown resolves the next Mass and the time left until it from a
	// single clock reading. earliest picks by start time instead of
	// template order.
	Countdown(ctx context.Context, earliest bool) (NextMass, bool, error)
	Upcoming(ctx context.Context, n int) ([]domain.Occurrence, error)
	ExportICS(ctx context.Context, w io.Writer, opts schedule.ICSOptions) error
	Replace(ctx context.Context, t schedule.Template) error
}

// NextMass is an occurrence with its countdown, both taken at ResolvedAt.
type NextMass struct {
	Occurrence domain.Occurrence
	Remaining  domain.Countdown
	ResolvedAt time.Time
}

// PreferencesPatch lists the preference fields to change. Nil fields are kept.
type PreferencesPatch struct {
	Theme         *domain.Theme
	Language      *string
	ReducedMotion *bool
	FontScale     *float64
}

type PreferencesService interface {
	// Get returns the stored preferences, or the defaults when none are stored.
	Get(ctx context.Context) (domain.Preferences, error)
	Update(ctx context.Context, patch PreferencesPatch) (domain.Preferences, error)
}

// ImportResult holds the outcome of a seed import.
type ImportResult struct {
	RootID      string
	EntityCount int
	// SlotCount is zero when the seed kept the existing schedule.
	SlotCount int
}

type ImportService interface {
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
	ImportSeed(ctx context.Context, seed *importer.Seed) (*ImportResult, error)
	// ExportFile writes the current directory and schedule as a seed file.
	ExportFile(ctx context.Context, path string) error
}
