package entity

import (
	"errors"
	"fmt"
)

// Validate checks the tree invariants and returns every violation joined
// into one error, or nil when the store is a well-formed tree.
func (s Store) Validate() error {
	var errs []error

	var roots []string
	for _, id := range s.IDs() {
		n := s.nodes[id]
		if n.ID == "" {
			errs = append(errs, errors.New("entity with empty id"))
		}
		if !n.Kind.Valid() {
			errs = append(errs, fmt.Errorf("entity %q: invalid kind %q", id, n.Kind))
		}
		if n.ParentID == nil {
			roots = append(roots, id)
		} else {
			p, ok := s.nodes[*n.ParentID]
			switch {
			case !ok:
				errs = append(errs, fmt.Errorf("entity %q: parent %q does not exist", id, *n.ParentID))
			case countOf(p.ChildIDs, id) != 1:
				errs = append(errs, fmt.Errorf("entity %q: parent %q lists it %d times", id, p.ID, countOf(p.ChildIDs, id)))
			}
		}

		seen := make(map[string]bool, len(n.ChildIDs))
		for _, c := range n.ChildIDs {
			if seen[c] {
				errs = append(errs, fmt.Errorf("entity %q: duplicate child %q", id, c))
				continue
			}
			seen[c] = true
			child, ok := s.nodes[c]
			if !ok {
				errs = append(errs, fmt.Errorf("entity %q: child %q does not exist", id, c))
				continue
			}
			if child.ParentID == nil || *child.ParentID != id {
				errs = append(errs, fmt.Errorf("entity %q: child %q records a different parent", id, c))
			}
		}

		if _, err := s.PathToRoot(id); err != nil {
			errs = append(errs, fmt.Errorf("entity %q: %w", id, err))
		}
	}

	switch {
	case len(s.nodes) == 0:
	case len(roots) == 0:
		errs = append(errs, errors.New("no root entity"))
	case len(roots) > 1:
		errs = append(errs, fmt.Errorf("%d root entities %v, want exactly one", len(roots), roots))
	}

	return errors.Join(errs...)
}

func countOf(ids []string, id string) int {
	n := 0
	for _, v := range ids {
		if v == id {
			n++
		}
	}
	return n
}
