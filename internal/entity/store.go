// Package entity holds the parish directory tree as immutable snapshots.
//
// A Store maps ids to nodes. Every mutator returns a new Store and leaves
// the receiver untouched, so a snapshot can be shared freely between
// goroutines. Absence is a normal result: lookups return false or an empty
// slice and mutators against missing ids return the receiver unchanged.
package entity

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/alexanderramin/parish/internal/domain"
)

// ErrCorruptTree reports a parent chain that loops or points at a missing node.
var ErrCorruptTree = errors.New("corrupt entity tree")

// Store is an immutable id -> node mapping.
type Store struct {
	nodes map[string]domain.EntityNode
}

// New builds a store from nodes. Later duplicates of an id replace earlier ones.
func New(nodes ...domain.EntityNode) Store {
	m := make(map[string]domain.EntityNode, len(nodes))
	for _, n := range nodes {
		m[n.ID] = n.Clone()
	}
	return Store{nodes: m}
}

// FromMap builds a store from an existing mapping. The map is copied.
func FromMap(m map[string]domain.EntityNode) Store {
	out := make(map[string]domain.EntityNode, len(m))
	for id, n := range m {
		out[id] = n.Clone()
	}
	return Store{nodes: out}
}

// Len returns the number of nodes, reachable or not.
func (s Store) Len() int {
	return len(s.nodes)
}

// IDs returns every id in lexical order.
func (s Store) IDs() []string {
	return slices.Sorted(maps.Keys(s.nodes))
}

// Nodes returns a copy of every node ordered by id.
func (s Store) Nodes() []domain.EntityNode {
	out := make([]domain.EntityNode, 0, len(s.nodes))
	for _, id := range s.IDs() {
		out = append(out, s.nodes[id].Clone())
	}
	return out
}

// Get returns the node with the given id.
func (s Store) Get(id string) (domain.EntityNode, bool) {
	n, ok := s.nodes[id]
	if !ok {
		return domain.EntityNode{}, false
	}
	return n.Clone(), true
}

// Has reports whether id is present.
func (s Store) Has(id string) bool {
	_, ok := s.nodes[id]
	return ok
}

// Children resolves parentID's ChildIDs in order. Ids that do not resolve are skipped.
func (s Store) Children(parentID string) []domain.EntityNode {
	p, ok := s.nodes[parentID]
	if !ok {
		return nil
	}
	out := make([]domain.EntityNode, 0, len(p.ChildIDs))
	for _, id := range p.ChildIDs {
		if c, ok := s.nodes[id]; ok {
			out = append(out, c.Clone())
		}
	}
	return out
}

// Parent returns childID's parent. False when the child is a root, is
// missing, or names a parent the store does not hold.
func (s Store) Parent(childID string) (domain.EntityNode, bool) {
	c, ok := s.nodes[childID]
	if !ok || c.ParentID == nil {
		return domain.EntityNode{}, false
	}
	return s.Get(*c.ParentID)
}

// PathToRoot returns the nodes from the root down to id, inclusive.
// An unknown id yields an empty path. A chain that revisits a node or
// names a missing parent yields ErrCorruptTree.
func (s Store) PathToRoot(id string) ([]domain.EntityNode, error) {
	n, ok := s.nodes[id]
	if !ok {
		return nil, nil
	}

	seen := map[string]bool{id: true}
	path := []domain.EntityNode{n.Clone()}
	for n.ParentID != nil {
		pid := *n.ParentID
		if seen[pid] {
			return nil, fmt.Errorf("%w: cycle through %q", ErrCorruptTree, pid)
		}
		p, ok := s.nodes[pid]
		if !ok {
			return nil, fmt.Errorf("%w: %q names missing parent %q", ErrCorruptTree, n.ID, pid)
		}
		seen[pid] = true
		path = append(path, p.Clone())
		n = p
	}
	slices.Reverse(path)
	return path, nil
}

// ByKind returns every node of the given kind ordered by id.
func (s Store) ByKind(kind domain.EntityKind) []domain.EntityNode {
	var out []domain.EntityNode
	for _, id := range s.IDs() {
		if n := s.nodes[id]; n.Kind == kind {
			out = append(out, n.Clone())
		}
	}
	return out
}

// Root returns the single node without a parent. False when there is no
// such node or more than one.
func (s Store) Root() (domain.EntityNode, bool) {
	var root domain.EntityNode
	found := 0
	for _, n := range s.nodes {
		if n.ParentID == nil {
			root = n
			found++
		}
	}
	if found != 1 {
		return domain.EntityNode{}, false
	}
	return root.Clone(), true
}

// Walk visits the subtree under id depth-first, pre-order, following
// ChildIDs. depth is 0 for id itself. Returning false from fn skips the
// node's children. Nodes already visited are not entered twice.
func (s Store) Walk(id string, fn func(n domain.EntityNode, depth int) bool) {
	seen := make(map[string]bool)
	var visit func(id string, depth int)
	visit = func(id string, depth int) {
		n, ok := s.nodes[id]
		if !ok || seen[id] {
			return
		}
		seen[id] = true
		if !fn(n.Clone(), depth) {
			return
		}
		for _, c := range n.ChildIDs {
			visit(c, depth+1)
		}
	}
	visit(id, 0)
}

// Descendants returns the ids under id, excluding id itself.
func (s Store) Descendants(id string) []string {
	var out []string
	s.Walk(id, func(n domain.EntityNode, depth int) bool {
		if depth > 0 {
			out = append(out, n.ID)
		}
		return true
	})
	return out
}

// Reachable returns every node reachable from the root, pre-order.
func (s Store) Reachable() []domain.EntityNode {
	root, ok := s.Root()
	if !ok {
		return nil
	}
	var out []domain.EntityNode
	s.Walk(root.ID, func(n domain.EntityNode, _ int) bool {
		out = append(out, n)
		return true
	})
	return out
}

// Orphans returns nodes present in the store but unreachable from the root, ordered by id.
func (s Store) Orphans() []domain.EntityNode {
	reach := make(map[string]bool, len(s.nodes))
	for _, n := range s.Reachable() {
		reach[n.ID] = true
	}
	var out []domain.EntityNode
	for _, id := range s.IDs() {
		if !reach[id] {
			out = append(out, s.nodes[id].Clone())
		}
	}
	return out
}
