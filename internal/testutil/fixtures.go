package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/parish/internal/domain"
	"github.com/alexanderramin/parish/internal/entity"
	"github.com/google/uuid"
)

var testEntityCounter atomic.Int64

// Entity options
type EntityOption func(*domain.EntityNode)

func WithID(id string) EntityOption {
	return func(n *domain.EntityNode) {
		n.ID = id
	}
}

func WithKind(k domain.EntityKind) EntityOption {
	return func(n *domain.EntityNode) {
		n.Kind = k
	}
}

func WithDescription(d string) EntityOption {
	return func(n *domain.EntityNode) {
		n.Description = d
	}
}

func WithAttributes(a domain.Attributes) EntityOption {
	return func(n *domain.EntityNode) {
		n.Attributes = &a
	}
}

// NewTestEntity builds a detached activity node with a unique id.
func NewTestEntity(title string, opts ...EntityOption) domain.EntityNode {
	n := domain.EntityNode{
		ID:    fmt.Sprintf("test-%d-%s", testEntityCounter.Add(1), uuid.NewString()[:8]),
		Kind:  domain.KindActivity,
		Title: title,
	}
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

// NewTestDirectory returns a three-node directory: root "r" with
// category "c" holding activity "a".
func NewTestDirectory() entity.Store {
	r, c := "r", "c"
	return entity.New(
		domain.EntityNode{ID: "r", Kind: domain.KindOrganization, Title: "Test Parish", ChildIDs: []string{"c"}},
		domain.EntityNode{ID: "c", Kind: domain.KindCategory, Title: "Category", ChildIDs: []string{"a"}, ParentID: &r},
		domain.EntityNode{ID: "a", Kind: domain.KindActivity, Title: "Activity", ParentID: &c},
	)
}
