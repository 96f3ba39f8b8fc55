package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/parish/internal/db"
	"github.com/alexanderramin/parish/internal/importer"
	"github.com/alexanderramin/parish/internal/repository"
	"github.com/alexanderramin/parish/internal/schedule"
	"gopkg.in/yaml.v3"
)

type importService struct {
	uow      db.UnitOfWork
	repos    repository.Factory
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, repos repository.Factory, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		repos:    repos,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	seed, err := importer.LoadSeed(path)
	if err != nil {
		return nil, fmt.Errorf("loading seed file: %w", err)
	}
	return s.ImportSeed(ctx, seed)
}

// ImportSeed replaces the directory, and the schedule when the seed has
// mass times, in one transaction.
func (s *importService) ImportSeed(ctx context.Context, seed *importer.Seed) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer observe(ctx, s.observer, "import-seed", startedAt, fields, &err)

	if errs := importer.ValidateSeed(seed); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	res, err := importer.Convert(seed)
	if err != nil {
		return nil, fmt.Errorf("converting seed: %w", err)
	}
	fields["entities"] = res.Directory.Len()
	fields["slots"] = len(res.Template)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repos := s.repos(tx)
		if err := repos.Entities.SaveSnapshot(ctx, res.Directory); err != nil {
			return fmt.Errorf("saving directory: %w", err)
		}
		if len(res.Template) > 0 {
			if err := repos.Schedule.Replace(ctx, res.Template); err != nil {
				return fmt.Errorf("saving mass schedule: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		RootID:      seed.Parish.ID,
		EntityCount: res.Directory.Len(),
		SlotCount:   len(res.Template),
	}, nil
}

func (s *importService) ExportFile(ctx context.Context, path string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"path": path}
	defer observe(ctx, s.observer, "export-seed", startedAt, fields, &err)

	format, err := importer.FormatFor(path)
	if err != nil {
		return err
	}

	var seed *importer.Seed
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repos := s.repos(tx)
		dir, err := repos.Entities.LoadSnapshot(ctx)
		if err != nil {
			return fmt.Errorf("loading directory: %w", err)
		}
		t, err := repos.Schedule.Load(ctx)
		if errors.Is(err, repository.ErrNotFound) {
			t, err = schedule.DefaultMassTimes(), nil
		}
		if err != nil {
			return fmt.Errorf("loading mass schedule: %w", err)
		}
		seed, err = importer.FromStore(dir, t)
		return err
	})
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case importer.FormatYAML:
		data, err = yaml.Marshal(seed)
	default:
		data, err = json.MarshalIndent(seed, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encoding seed: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing seed file: %w", err)
	}
	fields["entities"] = len(seed.Entities) + 1
	return nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
