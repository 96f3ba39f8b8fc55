package importer

import (
	"fmt"

	"github.com/alexanderramin/parish/internal/domain"
	"github.com/alexanderramin/parish/internal/entity"
	"github.com/alexanderramin/parish/internal/schedule"
)

// Result holds the domain objects built from a seed.
type Result struct {
	Directory entity.Store
	// Template is nil when the seed carries no massTimes.
	Template schedule.Template
}

// Convert transforms a validated Seed into a directory and a Mass template.
// Call ValidateSeed first; Convert still checks the built directory and
// fails if it is not a well-formed tree.
func Convert(seed *Seed) (*Result, error) {
	rootKind := domain.KindOrganization
	if seed.Parish.Kind != "" {
		rootKind = domain.EntityKind(seed.Parish.Kind)
	}
	nodes := map[string]domain.EntityNode{
		seed.Parish.ID: {
			ID:          seed.Parish.ID,
			Kind:        rootKind,
			Title:       seed.Parish.Title,
			Description: seed.Parish.Description,
			Attributes:  seed.Parish.Attributes,
		},
	}

	for _, e := range seed.Entities {
		parent := e.ParentID
		nodes[e.ID] = domain.EntityNode{
			ID:          e.ID,
			Kind:        domain.EntityKind(e.Kind),
			Title:       e.Title,
			Description: e.Description,
			ParentID:    &parent,
			Attributes:  e.Attributes,
		}
	}

	// Child order follows file order, independent of where the parent appears.
	for _, e := range seed.Entities {
		p, ok := nodes[e.ParentID]
		if !ok {
			return nil, fmt.Errorf("entity %q: parent %q not found", e.ID, e.ParentID)
		}
		p.ChildIDs = append(p.ChildIDs, e.ID)
		nodes[e.ParentID] = p
	}

	dir := entity.FromMap(nodes)
	if err := dir.Validate(); err != nil {
		return nil, fmt.Errorf("building directory: %w", err)
	}

	res := &Result{Directory: dir}
	if len(seed.MassTimes) > 0 {
		t, err := schedule.ParseTemplate(seed.MassTimes)
		if err != nil {
			return nil, fmt.Errorf("parsing mass times: %w", err)
		}
		res.Template = t
	}
	return res, nil
}

// FromStore builds a seed describing s, walking from the root so child
// order is kept. Orphans are not exported.
func FromStore(s entity.Store, t schedule.Template) (*Seed, error) {
	root, ok := s.Root()
	if !ok {
		return nil, fmt.Errorf("directory has no single root")
	}
	seed := &Seed{
		Parish: EntityImport{
			ID:          root.ID,
			Kind:        string(root.Kind),
			Title:       root.Title,
			Description: root.Description,
			Attributes:  root.Attributes,
		},
		MassTimes: t.Raw(),
	}
	s.Walk(root.ID, func(n domain.EntityNode, depth int) bool {
		if depth > 0 {
			seed.Entities = append(seed.Entities, EntityImport{
				ID:          n.ID,
				Kind:        string(n.Kind),
				Title:       n.Title,
				Description: n.Description,
				ParentID:    n.ParentOr(""),
				Attributes:  n.Attributes,
			})
		}
		return true
	})
	return seed, nil
}
