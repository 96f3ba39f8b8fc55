package domain

import "slices"

// Attributes carries optional display data for an entity. Traversal never reads it.
type Attributes struct {
	Contact      string   `json:"contact,omitempty" yaml:"contact,omitempty"`
	Email        string   `json:"email,omitempty" yaml:"email,omitempty"`
	Phone        string   `json:"phone,omitempty" yaml:"phone,omitempty"`
	Schedule     string   `json:"schedule,omitempty" yaml:"schedule,omitempty"`
	Location     string   `json:"location,omitempty" yaml:"location,omitempty"`
	AgeGroup     string   `json:"ageGroup,omitempty" yaml:"ageGroup,omitempty"`
	Requirements []string `json:"requirements,omitempty" yaml:"requirements,omitempty"`
	Image        string   `json:"image,omitempty" yaml:"image,omitempty"`
}

// EntityNode is one node of the parish directory tree.
type EntityNode struct {
	ID          string      `json:"id"`
	Kind        EntityKind  `json:"kind"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	ChildIDs    []string    `json:"childIds"`
	ParentID    *string     `json:"parentId,omitempty"`
	Attributes  *Attributes `json:"attributes,omitempty"`
}

// IsRoot reports whether the node has no parent.
func (n EntityNode) IsRoot() bool {
	return n.ParentID == nil
}

// ParentOr returns the parent id, or fallback when the node is a root.
func (n EntityNode) ParentOr(fallback string) string {
	if n.ParentID == nil {
		return fallback
	}
	return *n.ParentID
}

// Clone returns a deep copy so snapshots never share slices or pointers.
func (n EntityNode) Clone() EntityNode {
	out := n
	out.ChildIDs = slices.Clone(n.ChildIDs)
	if n.ParentID != nil {
		p := *n.ParentID
		out.ParentID = &p
	}
	if n.Attributes != nil {
		a := *n.Attributes
		a.Requirements = slices.Clone(n.Attributes.Requirements)
		out.Attributes = &a
	}
	return out
}

// EntityPatch is a shallow-merge update. Nil fields are left untouched.
// ParentID is a double pointer so a patch can clear the parent explicitly.
type EntityPatch struct {
	Kind        *EntityKind
	Title       *string
	Description *string
	ChildIDs    *[]string
	ParentID    **string
	Attributes  *Attributes
}

// Apply merges the patch onto n and returns the result. ID is never changed.
func (p EntityPatch) Apply(n EntityNode) EntityNode {
	out := n.Clone()
	if p.Kind != nil {
		out.Kind = *p.Kind
	}
	out.Title = CoalescePtr(out.Title, p.Title)
	out.Description = CoalescePtr(out.Description, p.Description)
	if p.ChildIDs != nil {
		out.ChildIDs = slices.Clone(*p.ChildIDs)
	}
	if p.ParentID != nil {
		if *p.ParentID == nil {
			out.ParentID = nil
		} else {
			v := **p.ParentID
			out.ParentID = &v
		}
	}
	if p.Attributes != nil {
		a := *p.Attributes
		a.Requirements = slices.Clone(p.Attributes.Requirements)
		out.Attributes = &a
	}
	return out
}

// IsEmpty reports whether the patch would change nothing.
func (p EntityPatch) IsEmpty() bool {
	return p.Kind == nil && p.Title == nil && p.Description == nil &&
		p.ChildIDs == nil && p.ParentID == nil && p.Attributes == nil
}
