package queries

import (
	"errors"
	"time"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/pkg/guard"
)

// ErrGetPaymentStatusQueryIsNotConstructed is returned when the query was not
// created through the constructor.
var ErrGetPaymentStatusQueryIsNotConstructed = errors.New(
	"GetPaymentStatusQuery must be created via NewGetPaymentStatusQuery constructor",
)

// GetPaymentStatusQuery retrieves the latest payment attempt for an order,
// asking the provider directly when the stored status is still Processing.
// Pure read: reconciliation happens through callbacks and the watch job, never
// through status polling.
type GetPaymentStatusQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPaymentStatusQuery creates a validated payment status query.
func NewGetPaymentStatusQuery(orderID kernel.UUID) (GetPaymentStatusQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetPaymentStatusQuery{}, err
	}

	return GetPaymentStatusQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPaymentStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetPaymentStatusQueryIsNotConstructed)
}

// OrderID returns the order whose payment is looked up.
func (q GetPaymentStatusQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetPaymentStatusQueryResponse is the payment status read model.
type GetPaymentStatusQueryResponse struct {
	PaymentID     kernel.UUID
	Status        string
	Amount        string
	Currency      string
	Method        string
	ReceiptNumber *string
	FailureReason *string
	PaidAt        *time.Time
	CreatedAt     time.Time
}
