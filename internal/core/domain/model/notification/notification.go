// Package notification contains the Notification aggregate: append-only
// records of user-facing events, addressed to customers and couriers alike.
// Notifications are created by command handlers when something noteworthy
// happens to an order or payment and are never updated apart from being
// marked read.
package notification

import (
	"errors"
	"strings"
	"time"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/pkg/errs"
	"swiftparcel/internal/pkg/guard"
)

// Kind classifies what the notification is about.
type Kind string

const (
	KindOrderCreated     Kind = "ORDER_CREATED"
	KindCourierAssigned  Kind = "COURIER_ASSIGNED"
	KindNewAssignment    Kind = "NEW_ASSIGNMENT"
	KindStatusUpdated    Kind = "STATUS_UPDATED"
	KindPaymentConfirmed Kind = "PAYMENT_CONFIRMED"
	KindPaymentFailed    Kind = "PAYMENT_FAILED"
)

// KindFromString parses the wire representation, e.g. "COURIER_ASSIGNED".
func KindFromString(s string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(s)))
	if err := k.Validate(); err != nil {
		return "", err
	}
	return k, nil
}

// Validate checks the kind against the known set.
func (k Kind) Validate() error {
	switch k {
	case KindOrderCreated, KindCourierAssigned, KindNewAssignment,
		KindStatusUpdated, KindPaymentConfirmed, KindPaymentFailed:
		return nil
	}
	return errs.NewValueIsInvalidError("notification_kind")
}

// String returns the wire name of the kind.
func (k Kind) String() string {
	return string(k)
}

// ErrNotificationIsNotConstructed is returned when using an improperly
// initialized Notification.
var ErrNotificationIsNotConstructed = errors.New(
	"Notification must be created via NewNotification constructor")

// Notification is a single customer-facing event record.
type Notification struct {
	id         kernel.UUID
	customerID kernel.UUID
	orderID    *kernel.UUID
	kind       Kind
	message    string
	isRead     bool
	createdAt  time.Time

	guard guard.ConstructorGuard
}

// NewNotification creates an unread notification. orderID is optional; it is
// set for order and payment events and nil for account-level ones.
func NewNotification(
	id kernel.UUID,
	customerID kernel.UUID,
	orderID *kernel.UUID,
	kind Kind,
	message string,
) (*Notification, error) {
	n := &Notification{
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		n.setID(id),
		n.setCustomerID(customerID),
		n.setKind(kind),
		n.setMessage(message),
	); err != nil {
		return nil, err
	}

	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return nil, err
		}
		n.orderID = orderID
	}

	return n, nil
}

// RestoreNotification reconstructs a notification from persistence.
func RestoreNotification(
	id kernel.UUID,
	customerID kernel.UUID,
	orderID *kernel.UUID,
	kind Kind,
	message string,
	isRead bool,
	createdAt time.Time,
) (*Notification, error) {
	n, err := NewNotification(id, customerID, orderID, kind, message)
	if err != nil {
		return nil, err
	}

	n.isRead = isRead
	n.createdAt = createdAt
	return n, nil
}

// Validate checks that the Notification was created through a constructor.
func (n *Notification) Validate() error {
	if n == nil {
		return ErrNotificationIsNotConstructed
	}
	return n.guard.Validate(ErrNotificationIsNotConstructed)
}

// ID returns the notification's unique identifier.
func (n *Notification) ID() kernel.UUID {
	return n.id
}

// CustomerID returns the recipient.
func (n *Notification) CustomerID() kernel.UUID {
	return n.customerID
}

// OrderID returns the related order, or nil for account-level events.
func (n *Notification) OrderID() *kernel.UUID {
	return n.orderID
}

// Kind returns the event classification.
func (n *Notification) Kind() Kind {
	return n.kind
}

// Message returns the human-readable message body.
func (n *Notification) Message() string {
	return n.message
}

// IsRead reports whether the customer has seen the notification.
func (n *Notification) IsRead() bool {
	return n.isRead
}

// CreatedAt returns when the notification was created.
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// MarkRead records that the customer has seen the notification.
func (n *Notification) MarkRead() {
	n.isRead = true
}

func (n *Notification) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.id = id
	return nil
}

func (n *Notification) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer_id", err)
	}
	n.customerID = customerID
	return nil
}

func (n *Notification) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	n.kind = kind
	return nil
}

func (n *Notification) setMessage(message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return errs.NewValueIsRequiredError("message")
	}
	n.message = message
	return nil
}
