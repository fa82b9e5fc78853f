package domain

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when an insert hits a unique key that is
	// already taken.
	ErrAlreadyExists = errors.New("already exists")

	// ErrMutationNotAllowed is returned when line items are added to or
	// removed from a purchase order that is no longer in draft.
	ErrMutationNotAllowed = errors.New("purchase order items are only mutable while the order is in draft")

	// ErrInvalidTransition is returned for a status change the transition
	// table does not permit.
	ErrInvalidTransition = errors.New("invalid purchase order status transition")

	// ErrEmptyDraft is returned when promoting a draft purchase order that
	// owns no items.
	ErrEmptyDraft = errors.New("a draft purchase order without items cannot be promoted")
)
