package importer

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/parish/internal/domain"
	"github.com/alexanderramin/parish/internal/schedule"
)

// ValidateSeed checks the seed for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateSeed(seed *Seed) []error {
	var errs []error

	errs = append(errs, validateParish(&seed.Parish)...)

	ids := map[string]bool{}
	if seed.Parish.ID != "" {
		ids[seed.Parish.ID] = true
	}
	errs = append(errs, validateEntities(seed.Entities, ids)...)
	errs = append(errs, validateAncestry(seed)...)
	errs = append(errs, validateMassTimes(seed.MassTimes)...)

	return errs
}

func validateParish(p *EntityImport) []error {
	var errs []error
	if p.ID == "" {
		errs = append(errs, fmt.Errorf("parish.id is required"))
	}
	if p.Title == "" {
		errs = append(errs, fmt.Errorf("parish.title is required"))
	}
	if p.ParentID != "" {
		errs = append(errs, fmt.Errorf("parish.parentId must be empty, got %q", p.ParentID))
	}
	if p.Kind != "" && !domain.EntityKind(p.Kind).Valid() {
		errs = append(errs, fmt.Errorf("parish.kind: invalid kind %q", p.Kind))
	}
	return errs
}

// validateEntities records every id in ids so parents can be checked
// regardless of file order.
func validateEntities(entities []EntityImport, ids map[string]bool) []error {
	var errs []error

	for i, e := range entities {
		prefix := fmt.Sprintf("entities[%d]", i)
		if e.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
			continue
		}
		if ids[e.ID] {
			errs = append(errs, fmt.Errorf("%s: duplicate id %q", prefix, e.ID))
		}
		ids[e.ID] = true
	}

	for i, e := range entities {
		if e.ID == "" {
			continue
		}
		prefix := fmt.Sprintf("entities[%d] (%s)", i, e.ID)
		if e.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if e.Kind == "" {
			errs = append(errs, fmt.Errorf("%s.kind is required", prefix))
		} else if !domain.EntityKind(e.Kind).Valid() {
			errs = append(errs, fmt.Errorf("%s.kind: invalid kind %q", prefix, e.Kind))
		}
		switch {
		case e.ParentID == "":
			errs = append(errs, fmt.Errorf("%s.parentId is required", prefix))
		case e.ParentID == e.ID:
			errs = append(errs, fmt.Errorf("%s.parentId cannot reference itself", prefix))
		case !ids[e.ParentID]:
			errs = append(errs, fmt.Errorf("%s.parentId %q not found", prefix, e.ParentID))
		}
	}
	return errs
}

// validateAncestry reports entities whose parent chain never reaches the parish.
func validateAncestry(seed *Seed) []error {
	parents := make(map[string]string, len(seed.Entities))
	for _, e := range seed.Entities {
		if e.ID != "" && e.ParentID != "" && e.ParentID != e.ID {
			parents[e.ID] = e.ParentID
		}
	}

	var errs []error
	for _, e := range seed.Entities {
		if _, ok := parents[e.ID]; !ok {
			continue
		}
		seen := map[string]bool{e.ID: true}
		for cur := parents[e.ID]; cur != seed.Parish.ID; cur = parents[cur] {
			if seen[cur] {
				errs = append(errs, fmt.Errorf("entity %q: parent chain forms a cycle", e.ID))
				break
			}
			seen[cur] = true
			if _, ok := parents[cur]; !ok {
				// Missing parents are reported by validateEntities.
				break
			}
		}
	}
	return errs
}

func validateMassTimes(raw []schedule.RawSlot) []error {
	if len(raw) == 0 {
		return nil
	}
	_, err := schedule.ParseTemplate(raw)
	var verr *schedule.ValidationError
	if errors.As(err, &verr) {
		errs := make([]error, 0, len(verr.Problems))
		for _, p := range verr.Problems {
			errs = append(errs, fmt.Errorf("massTimes: %s", p))
		}
		return errs
	}
	if err != nil {
		return []error{fmt.Errorf("massTimes: %w", err)}
	}
	return nil
}
