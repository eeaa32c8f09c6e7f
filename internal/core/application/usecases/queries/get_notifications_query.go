package queries

import (
	"errors"
	"time"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/pkg/guard"
)

// ErrGetNotificationsQueryIsNotConstructed is returned when the query was not
// created through the constructor.
var ErrGetNotificationsQueryIsNotConstructed = errors.New(
	"GetNotificationsQuery must be created via NewGetNotificationsQuery constructor",
)

// GetNotificationsQuery lists a customer's notifications, optionally only the
// unread ones.
type GetNotificationsQuery struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	unreadOnly bool

	guard guard.ConstructorGuard
}

// NewGetNotificationsQuery creates a validated notification listing query.
func NewGetNotificationsQuery(customerID kernel.UUID, unreadOnly bool) (GetNotificationsQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetNotificationsQuery{}, err
	}

	return GetNotificationsQuery{
		customerID: customerID,
		unreadOnly: unreadOnly,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetNotificationsQueryIsNotConstructed)
}

// CustomerID returns the customer whose notifications are listed.
func (q GetNotificationsQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// UnreadOnly reports whether read notifications are filtered out.
func (q GetNotificationsQuery) UnreadOnly() bool {
	return q.unreadOnly
}

// GetNotificationsQueryResponse is one notification row.
type GetNotificationsQueryResponse struct {
	ID        kernel.UUID
	OrderID   *kernel.UUID
	Kind      string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}
