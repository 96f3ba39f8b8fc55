package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/parish/internal/db"
	"github.com/alexanderramin/parish/internal/domain"
	"github.com/alexanderramin/parish/internal/repository"
	"github.com/alexanderramin/parish/internal/schedule"
)

type scheduleService struct {
	uow      db.UnitOfWork
	repos    repository.Factory
	clock    schedule.Clock
	duration time.Duration
	observer UseCaseObserver
}

// NewScheduleService builds the Mass schedule service. duration <= 0 uses
// schedule.DefaultDuration.
func NewScheduleService(uow db.UnitOfWork, repos repository.Factory, clock schedule.Clock, duration time.Duration, observers ...UseCaseObserver) ScheduleService {
	if duration <= 0 {
		duration = schedule.DefaultDuration
	}
	return &scheduleService{
		uow:      uow,
		repos:    repos,
		clock:    clock,
		duration: duration,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *scheduleService) Template(ctx context.Context) (schedule.Template, error) {
	var t schedule.Template
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		t, err = s.repos(tx).Schedule.Load(ctx)
		return err
	})
	if errors.Is(err, repository.ErrNotFound) {
		return schedule.DefaultMassTimes(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading mass schedule: %w", err)
	}
	return t, nil
}

func (s *scheduleService) Next(ctx context.Context) (domain.Occurrence, bool, error) {
	t, err := s.Template(ctx)
	if err != nil {
		return domain.Occurrence{}, false, err
	}
	occ, ok := schedule.FindNextOccurrence(t, s.clock.Now())
	return occ, ok, nil
}

func (s *scheduleService) Earliest(ctx context.Context) (domain.Occurrence, bool, error) {
	t, err := s.Template(ctx)
	if err != nil {
		return domain.Occurrence{}, false, err
	}
	occ, ok := schedule.FindEarliestOccurrence(t, s.clock.Now())
	return occ, ok, nil
}

func (s *scheduleService) Live(ctx context.Context) (domain.Occurrence, bool, error) {
	t, err := s.Template(ctx)
	if err != nil {
		return domain.Occurrence{}, false, err
	}
	occ, ok := schedule.CurrentOccurrence(t, s.clock.Now(), s.duration)
	return occ, ok, nil
}

func (s *scheduleService) Countdown(ctx context.Context, earliest bool) (NextMass, bool, error) {
	t, err := s.Template(ctx)
	if err != nil {
		return NextMass{}, false, err
	}
	now := s.clock.Now()
	find := schedule.FindNextOccurrence
	if earliest {
		find = schedule.FindEarliestOccurrence
	}
	occ, ok := find(t, now)
	if !ok {
		return NextMass{ResolvedAt: now}, false, nil
	}
	return NextMass{
		Occurrence: occ,
		Remaining:  schedule.TimeRemaining(occ.At, now),
		ResolvedAt: now,
	}, true, nil
}

func (s *scheduleService) Upcoming(ctx context.Context, n int) ([]domain.Occurrence, error) {
	t, err := s.Template(ctx)
	if err != nil {
		return nil, err
	}
	return schedule.Upcoming(t, s.clock.Now(), n), nil
}

func (s *scheduleService) ExportICS(ctx context.Context, w io.Writer, opts schedule.ICSOptions) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer observe(ctx, s.observer, "mass-ics", startedAt, fields, &err)

	t, err := s.Template(ctx)
	if err != nil {
		return err
	}
	fields["slots"] = len(t)
	if opts.Now.IsZero() {
		opts.Now = s.clock.Now()
	}
	if opts.Duration <= 0 {
		opts.Duration = s.duration
	}
	return schedule.ExportICS(w, t, opts)
}

func (s *scheduleService) Replace(ctx context.Context, t schedule.Template) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"slots": len(t)}
	defer observe(ctx, s.observer, "mass-replace", startedAt, fields, &err)

	if len(t) == 0 {
		return fmt.Errorf("replacing mass schedule: %w", schedule.ErrInvalidTemplate)
	}
	// Round-trip through the raw form so hand-built templates get the same checks.
	if _, err := schedule.ParseTemplate(t.Raw()); err != nil {
		return fmt.Errorf("replacing mass schedule: %w", err)
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return s.repos(tx).Schedule.Replace(ctx, t)
	})
}
