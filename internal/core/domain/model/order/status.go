package order

import (
	"fmt"

	"swiftparcel/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery order.
//
// State transitions:
//
//	Pending ──> Assigned ──> PickedUp ──> InTransit ──> Delivered
//	   │            │            │
//	   └────────────┴────────────┴──────> Cancelled
//
// Delivered and Cancelled are terminal. A single transition table governs
// legality; anything not listed there, including a transition to the current
// status, is rejected.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the order is created and waiting for a
	// courier to be assigned.
	Pending

	// Assigned indicates a courier has been assigned via the assignment engine.
	Assigned

	// PickedUp indicates the courier has collected the parcel at pickup.
	PickedUp

	// InTransit indicates the parcel is on its way to the destination.
	InTransit

	// Delivered is the successful terminal state.
	Delivered

	// Cancelled is the unsuccessful terminal state.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Assigned:  "ASSIGNED",
		PickedUp:  "PICKED_UP",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
	}
}

// transitionTable is the single source of truth for order lifecycle legality.
// Assigned is only ever entered through the assignment engine.
func transitionTable() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Assigned, Cancelled},
		Assigned:  {PickedUp, Cancelled},
		PickedUp:  {InTransit, Cancelled},
		InTransit: {Delivered},
		Delivered: {},
		Cancelled: {},
	}
}

// StatusFromString parses the wire representation of a status, e.g. "PICKED_UP".
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks that the Status is one of the defined lifecycle states.
// Unknown (the zero value) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := transitionTable()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, e.g. "IN_TRANSIT".
// Implements fmt.Stringer and is safe on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether the transition table allows moving to target.
// Self-transitions are never allowed.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitionTable()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo returns the new status if the transition table permits the
// move, or an InvalidTransitionError naming both statuses. The receiver is a
// value, so a failed transition leaves the caller's state untouched.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewInvalidTransitionError("order", s.String(), target.String())
	}

	return target, nil
}

// RequiresCourier reports whether an order in this status must have a courier
// assigned. Orders carry a courier exactly while Assigned, PickedUp,
// InTransit or Delivered.
func (s Status) RequiresCourier() bool {
	switch s {
	case Assigned, PickedUp, InTransit, Delivered:
		return true
	case Unknown, Pending, Cancelled:
		return false
	}
	return false
}

// ValidateCanHaveCourier validates the consistency between order status and
// courier assignment: a courier is present iff the status requires one.
func (s Status) ValidateCanHaveCourier(hasCourier bool) error {
	if hasCourier && !s.RequiresCourier() {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have a courier", s.String()))
	}

	if !hasCourier && s.RequiresCourier() {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have no courier", s.String()))
	}

	return nil
}
