package payment

import (
	"fmt"

	"swiftparcel/internal/pkg/errs"
)

// Status represents the reconciliation state of a payment.
//
// State transitions:
//
//	Pending ──> Processing ──> Paid
//	   │            │
//	   │            ├──> Failed
//	   │            ├──> Cancelled
//	   │            └──> Timeout
//	   │
//	   ├──> Failed
//	   └──> Cancelled
//
// Paid, Failed, Cancelled and Timeout are terminal. Provider callbacks that
// arrive after a terminal status has been reached are acknowledged but change
// nothing.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status: the payment record exists but the
	// provider has not been contacted yet.
	Pending

	// Processing indicates the STK push was accepted by the provider and the
	// customer is being prompted on their phone.
	Processing

	// Paid is the successful terminal state.
	Paid

	// Failed is the unsuccessful terminal state (insufficient balance, wrong
	// PIN, provider rejection).
	Failed

	// Cancelled indicates the customer dismissed the payment prompt. Terminal.
	Cancelled

	// Timeout indicates the customer never responded to the prompt. Terminal.
	Timeout
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Pending:    "PENDING",
		Processing: "PROCESSING",
		Paid:       "PAID",
		Failed:     "FAILED",
		Cancelled:  "CANCELLED",
		Timeout:    "TIMEOUT",
	}
}

func transitionTable() map[Status][]Status {
	return map[Status][]Status{
		Pending:    {Processing, Failed, Cancelled},
		Processing: {Paid, Failed, Cancelled, Timeout},
		Paid:       {},
		Failed:     {},
		Cancelled:  {},
		Timeout:    {},
	}
}

// StatusFromString parses the wire representation of a status, e.g. "PROCESSING".
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid payment status", s))
}

// Validate checks that the Status is one of the defined reconciliation states.
func (s Status) Validate() error {
	if _, ok := transitionTable()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Paid || s == Failed || s == Cancelled || s == Timeout
}

// CanTransitionTo reports whether the transition table allows moving to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitionTable()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo returns the new status if the transition table permits the
// move, or an InvalidTransitionError naming both statuses.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewInvalidTransitionError("payment", s.String(), target.String())
	}

	return target, nil
}
