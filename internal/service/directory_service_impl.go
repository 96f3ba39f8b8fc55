package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/parish/internal/db"
	"github.com/alexanderramin/parish/internal/domain"
	"github.com/alexanderramin/parish/internal/entity"
	"github.com/alexanderramin/parish/internal/repository"
	"github.com/google/uuid"
)

type directoryService struct {
	uow      db.UnitOfWork
	repos    repository.Factory
	observer UseCaseObserver
}

func NewDirectoryService(uow db.UnitOfWork, repos repository.Factory, observers ...UseCaseObserver) DirectoryService {
	return &directoryService{
		uow:      uow,
		repos:    repos,
		observer: useCaseObserverOrNoop(observers),
	}
}

func notFound(id string) error {
	return fmt.Errorf("entity %q: %w", id, repository.ErrNotFound)
}

func (s *directoryService) Snapshot(ctx context.Context) (entity.Store, error) {
	var st entity.Store
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		st, err = s.repos(tx).Entities.LoadSnapshot(ctx)
		return err
	})
	if err != nil {
		return entity.Store{}, fmt.Errorf("loading directory: %w", err)
	}
	return st, nil
}

// mutate loads the snapshot, applies fn and saves the result in one
// transaction. The result must pass Validate.
func (s *directoryService) mutate(ctx context.Context, fn func(st entity.Store) (entity.Store, error)) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := s.repos(tx).Entities
		current, err := repo.LoadSnapshot(ctx)
		if err != nil {
			return fmt.Errorf("loading directory: %w", err)
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		if err := next.Validate(); err != nil {
			return fmt.Errorf("directory would become invalid: %w", err)
		}
		if err := repo.SaveSnapshot(ctx, next); err != nil {
			return fmt.Errorf("saving directory: %w", err)
		}
		return nil
	})
}

func (s *directoryService) Get(ctx context.Context, id string) (domain.EntityNode, error) {
	st, err := s.Snapshot(ctx)
	if err != nil {
		return domain.EntityNode{}, err
	}
	n, ok := st.Get(id)
	if !ok {
		return domain.EntityNode{}, notFound(id)
	}
	return n, nil
}

func (s *directoryService) Children(ctx context.Context, id string) ([]domain.EntityNode, error) {
	st, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if !st.Has(id) {
		return nil, notFound(id)
	}
	return st.Children(id), nil
}

func (s *directoryService) Parent(ctx context.Context, id string) (domain.EntityNode, error) {
	st, err := s.Snapshot(ctx)
	if err != nil {
		return domain.EntityNode{}, err
	}
	if !st.Has(id) {
		return domain.EntityNode{}, notFound(id)
	}
	p, ok := st.Parent(id)
	if !ok {
		return domain.EntityNode{}, fmt.Errorf("parent of %q: %w", id, repository.ErrNotFound)
	}
	return p, nil
}

func (s *directoryService) Path(ctx context.Context, id string) ([]domain.EntityNode, error) {
	st, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if !st.Has(id) {
		return nil, notFound(id)
	}
	return st.PathToRoot(id)
}

func (s *directoryService) ByKind(ctx context.Context, kind domain.EntityKind) ([]domain.EntityNode, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("invalid entity kind %q", kind)
	}
	st, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return st.ByKind(kind), nil
}

func (s *directoryService) Orphans(ctx context.Context) ([]domain.EntityNode, error) {
	st, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return st.Orphans(), nil
}

func (s *directoryService) Validate(ctx context.Context) error {
	st, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	return st.Validate()
}

func (s *directoryService) Add(ctx context.Context, parentID string, n domain.EntityNode) (added domain.EntityNode, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"parent": parentID, "kind": string(n.Kind)}
	defer observe(ctx, s.observer, "entity-add", startedAt, fields, &err)

	if !n.Kind.Valid() {
		return domain.EntityNode{}, fmt.Errorf("invalid entity kind %q", n.Kind)
	}
	n.Title = strings.TrimSpace(n.Title)
	if n.Title == "" {
		return domain.EntityNode{}, fmt.Errorf("entity title is required")
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.ChildIDs = nil
	fields["id"] = n.ID

	err = s.mutate(ctx, func(st entity.Store) (entity.Store, error) {
		if !st.Has(parentID) {
			return st, notFound(parentID)
		}
		if st.Has(n.ID) {
			return st, fmt.Errorf("adding %q: %w", n.ID, ErrDuplicateID)
		}
		next := st.Add(parentID, n)
		added, _ = next.Get(n.ID)
		return next, nil
	})
	if err != nil {
		return domain.EntityNode{}, err
	}
	return added, nil
}

func (s *directoryService) Update(ctx context.Context, id string, patch domain.EntityPatch) (updated domain.EntityNode, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"id": id}
	defer observe(ctx, s.observer, "entity-update", startedAt, fields, &err)

	if patch.Kind != nil && !patch.Kind.Valid() {
		return domain.EntityNode{}, fmt.Errorf("invalid entity kind %q", *patch.Kind)
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return domain.EntityNode{}, fmt.Errorf("entity title cannot be empty")
	}

	err = s.mutate(ctx, func(st entity.Store) (entity.Store, error) {
		if !st.Has(id) {
			return st, notFound(id)
		}
		next := st.Update(id, patch)
		updated, _ = next.Get(id)
		return next, nil
	})
	if err != nil {
		return domain.EntityNode{}, err
	}
	return updated, nil
}

func (s *directoryService) Remove(ctx context.Context, id string, cascade bool) (removed int, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"id": id, "cascade": cascade}
	defer observe(ctx, s.observer, "entity-remove", startedAt, fields, &err)

	err = s.mutate(ctx, func(st entity.Store) (entity.Store, error) {
		n, ok := st.Get(id)
		if !ok {
			return st, notFound(id)
		}
		if n.IsRoot() {
			return st, fmt.Errorf("removing %q: %w", id, ErrRootEntity)
		}
		if len(n.ChildIDs) > 0 && !cascade {
			return st, fmt.Errorf("removing %q (%d children, use cascade): %w", id, len(n.ChildIDs), ErrHasChildren)
		}
		before := st.Len()
		var next entity.Store
		if cascade {
			next = st.RemoveCascade(*n.ParentID, id)
		} else {
			next = st.Remove(*n.ParentID, id)
		}
		removed = before - next.Len()
		if removed == 0 {
			return st, fmt.Errorf("entity %q is not listed by its parent: %w", id, repository.ErrNotFound)
		}
		return next, nil
	})
	fields["removed"] = removed
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func (s *directoryService) Move(ctx context.Context, id, newParentID string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"id": id, "to": newParentID}
	defer observe(ctx, s.observer, "entity-move", startedAt, fields, &err)

	return s.mutate(ctx, func(st entity.Store) (entity.Store, error) {
		n, ok := st.Get(id)
		if !ok {
			return st, notFound(id)
		}
		if !st.Has(newParentID) {
			return st, notFound(newParentID)
		}
		if n.IsRoot() {
			return st, fmt.Errorf("moving %q: %w", id, ErrRootEntity)
		}
		switch {
		case id == newParentID:
			return st, fmt.Errorf("%w: %q onto itself", ErrInvalidMove, id)
		case *n.ParentID == newParentID:
			return st, fmt.Errorf("%w: %q is already under %q", ErrInvalidMove, id, newParentID)
		case slices.Contains(st.Descendants(id), newParentID):
			return st, fmt.Errorf("%w: %q is a descendant of %q", ErrInvalidMove, newParentID, id)
		}
		return st.Move(id, newParentID), nil
	})
}
