package service

import "errors"

var (
	// ErrHasChildren is returned when removing a node that still has
	// children without asking for a cascade.
	ErrHasChildren = errors.New("entity has children")
	// ErrRootEntity is returned for operations the root cannot take part in.
	ErrRootEntity = errors.New("operation not allowed on the root entity")
	// ErrInvalidMove covers moves onto the node itself, a descendant, or
	// the current parent.
	ErrInvalidMove = errors.New("invalid move")
	// ErrDuplicateID is returned when adding a node whose id is taken.
	ErrDuplicateID = errors.New("entity id already exists")
	// ErrInvalidPreferences wraps preference values that fail validation.
	ErrInvalidPreferences = errors.New("invalid preferences")
)
