package domain

import (
	"fmt"
	"strings"
)

// POStatus is the lifecycle state of a purchase order.
type POStatus string

const (
	POStatusDraft     POStatus = "draft"
	POStatusOrdered   POStatus = "ordered"
	POStatusShipped   POStatus = "shipped"
	POStatusReceived  POStatus = "received"
	POStatusCancelled POStatus = "cancelled"
)

var poStatusLabels = map[POStatus]string{
	POStatusDraft:     "Draft",
	POStatusOrdered:   "Ordered",
	POStatusShipped:   "Shipped",
	POStatusReceived:  "Received",
	POStatusCancelled: "Cancelled",
}

// poTransitions is the single source of truth for allowed status changes.
// Received and Cancelled are terminal.
var poTransitions = map[POStatus][]POStatus{
	POStatusDraft:   {POStatusOrdered, POStatusCancelled},
	POStatusOrdered: {POStatusShipped, POStatusCancelled},
	POStatusShipped: {POStatusReceived},
}

// Label returns a human-readable label for the status.
func (s POStatus) Label() string {
	if label, ok := poStatusLabels[s]; ok {
		return label
	}

	return "Unknown"
}

// Valid reports whether s is one of the defined PO statuses.
func (s POStatus) Valid() bool {
	_, ok := poStatusLabels[s]
	return ok
}

// Terminal reports whether no further transitions are allowed from s.
func (s POStatus) Terminal() bool {
	return len(poTransitions[s]) == 0
}

// Mutable reports whether the order's line items may be added or removed.
func (s POStatus) Mutable() bool {
	return s == POStatusDraft
}

// CanTransition reports whether a purchase order may move from -> to.
func CanTransition(from, to POStatus) bool {
	for _, next := range poTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses reachable from s. The UI reads this
// instead of duplicating the transition rules.
func NextStatuses(s POStatus) []POStatus {
	next := make([]POStatus, len(poTransitions[s]))
	copy(next, poTransitions[s])
	return next
}

// ParsePOStatus returns the status for a given label or value (case-insensitive).
func ParsePOStatus(v string) (POStatus, error) {
	s := POStatus(strings.ToLower(strings.TrimSpace(v)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown purchase order status %q", v)
	}

	return s, nil
}

// WOStatus is the lifecycle state of a work order.
type WOStatus string

const (
	WOStatusPending    WOStatus = "pending"
	WOStatusInProgress WOStatus = "in_progress"
	WOStatusCompleted  WOStatus = "completed"
	WOStatusOnHold     WOStatus = "on_hold"
)

var woStatusLabels = map[WOStatus]string{
	WOStatusPending:    "Pending",
	WOStatusInProgress: "In Progress",
	WOStatusCompleted:  "Completed",
	WOStatusOnHold:     "On Hold",
}

// Label returns a human-readable label for the status.
func (s WOStatus) Label() string {
	if label, ok := woStatusLabels[s]; ok {
		return label
	}

	return "Unknown"
}

// Valid reports whether s is one of the defined work order statuses.
func (s WOStatus) Valid() bool {
	_, ok := woStatusLabels[s]
	return ok
}
