package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/alexanderramin/parish/internal/db"
	"github.com/alexanderramin/parish/internal/domain"
	"github.com/alexanderramin/parish/internal/locale"
	"github.com/alexanderramin/parish/internal/repository"
)

type preferencesService struct {
	uow      db.UnitOfWork
	repos    repository.Factory
	observer UseCaseObserver
}

func NewPreferencesService(uow db.UnitOfWork, repos repository.Factory, observers ...UseCaseObserver) PreferencesService {
	return &preferencesService{
		uow:      uow,
		repos:    repos,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *preferencesService) Get(ctx context.Context) (domain.Preferences, error) {
	var p domain.Preferences
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		p, err = s.repos(tx).Preferences.Get(ctx)
		return err
	})
	if errors.Is(err, repository.ErrNotFound) {
		return domain.DefaultPreferences(), nil
	}
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("loading preferences: %w", err)
	}
	return p, nil
}

func validatePreferences(p domain.Preferences) error {
	var errs []error
	if !p.Theme.Valid() {
		errs = append(errs, fmt.Errorf("theme %q (want light, dark or system)", p.Theme))
	}
	if !slices.Contains(locale.Supported(), p.Language) {
		errs = append(errs, fmt.Errorf("language %q (supported: %v)", p.Language, locale.Supported()))
	}
	if p.FontScale < 0.5 || p.FontScale > 3 {
		errs = append(errs, fmt.Errorf("font scale %.2f (want 0.5 to 3)", p.FontScale))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidPreferences, errors.Join(errs...))
	}
	return nil
}

func (s *preferencesService) Update(ctx context.Context, patch PreferencesPatch) (updated domain.Preferences, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer observe(ctx, s.observer, "prefs-update", startedAt, fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := s.repos(tx).Preferences
		current, err := repo.Get(ctx)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("loading preferences: %w", err)
		}
		next := domain.Preferences{
			Theme:         domain.CoalescePtr(current.Theme, patch.Theme),
			Language:      domain.CoalescePtr(current.Language, patch.Language),
			ReducedMotion: domain.CoalescePtr(current.ReducedMotion, patch.ReducedMotion),
			FontScale:     domain.CoalescePtr(current.FontScale, patch.FontScale),
		}
		if err := validatePreferences(next); err != nil {
			return err
		}
		fields["theme"] = string(next.Theme)
		fields["language"] = next.Language
		updated = next
		return repo.Upsert(ctx, next)
	})
	if err != nil {
		return domain.Preferences{}, err
	}
	return updated, nil
}
