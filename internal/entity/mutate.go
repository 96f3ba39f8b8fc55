package entity

import (
	"slices"

	"github.com/alexanderramin/parish/internal/domain"
)

// with returns a shallow copy of the mapping. Nodes are values and are
// cloned before any field is changed, so the copies never alias.
func (s Store) with() map[string]domain.EntityNode {
	m := make(map[string]domain.EntityNode, len(s.nodes)+1)
	for id, n := range s.nodes {
		m[id] = n
	}
	return m
}

// Add inserts node as the last child of parentID. The node's ParentID is
// overwritten with parentID. The store is returned unchanged when the
// parent is missing, the node has no id, or the id is already taken.
func (s Store) Add(parentID string, node domain.EntityNode) Store {
	parent, ok := s.nodes[parentID]
	if !ok || node.ID == "" || s.Has(node.ID) {
		return s
	}

	m := s.with()
	parent = parent.Clone()
	parent.ChildIDs = append(parent.ChildIDs, node.ID)
	m[parentID] = parent

	child := node.Clone()
	pid := parentID
	child.ParentID = &pid
	m[child.ID] = child
	return Store{nodes: m}
}

// Remove detaches id from parentID and deletes its entry. Children of the
// removed node stay in the store but are no longer reachable from the
// root. The store is returned unchanged when the parent is missing or
// does not list id as a child.
func (s Store) Remove(parentID, id string) Store {
	parent, ok := s.nodes[parentID]
	if !ok || !slices.Contains(parent.ChildIDs, id) {
		return s
	}

	m := s.with()
	parent = parent.Clone()
	parent.ChildIDs = slices.DeleteFunc(parent.ChildIDs, func(c string) bool { return c == id })
	m[parentID] = parent
	delete(m, id)
	return Store{nodes: m}
}

// RemoveCascade is Remove that also deletes every descendant of id.
func (s Store) RemoveCascade(parentID, id string) Store {
	descendants := s.Descendants(id)
	out := s.Remove(parentID, id)
	if out.Len() == s.Len() {
		return s
	}
	for _, d := range descendants {
		delete(out.nodes, d)
	}
	return out
}

// Update shallow-merges patch onto the node with the given id. ChildIDs
// and ParentID only change when the patch names them.
func (s Store) Update(id string, patch domain.EntityPatch) Store {
	n, ok := s.nodes[id]
	if !ok {
		return s
	}
	m := s.with()
	m[id] = patch.Apply(n)
	return Store{nodes: m}
}

// Move reparents id under newParentID, appending it to the new parent's
// children. Moving the root, moving under a missing parent, or moving a
// node beneath itself returns the store unchanged.
func (s Store) Move(id, newParentID string) Store {
	n, ok := s.nodes[id]
	if !ok || n.ParentID == nil {
		return s
	}
	if _, ok := s.nodes[newParentID]; !ok || newParentID == id {
		return s
	}
	if *n.ParentID == newParentID {
		return s
	}
	if slices.Contains(s.Descendants(id), newParentID) {
		return s
	}

	m := s.with()
	if old, ok := m[*n.ParentID]; ok {
		old = old.Clone()
		old.ChildIDs = slices.DeleteFunc(old.ChildIDs, func(c string) bool { return c == id })
		m[old.ID] = old
	}
	np := m[newParentID].Clone()
	np.ChildIDs = append(np.ChildIDs, id)
	m[newParentID] = np

	n = n.Clone()
	pid := newParentID
	n.ParentID = &pid
	m[id] = n
	return Store{nodes: m}
}
