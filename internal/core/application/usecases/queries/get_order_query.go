package queries

import (
	"errors"
	"time"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/pkg/guard"
)

// ErrGetOrderQueryIsNotConstructed is returned when the query was not created
// through the constructor.
var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its full detail by identifier.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a validated order detail query.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the order being looked up.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the order detail read model.
type GetOrderQueryResponse struct {
	ID                 kernel.UUID
	CustomerID         kernel.UUID
	TrackingNumber     string
	Status             string
	CourierID          *kernel.UUID
	PickupAddress      string
	DestinationAddress string
	WeightKg           float64
	WeightCategory     string
	Fragile            bool
	InsuranceRequired  bool
	Express            bool
	DistanceKm         float64
	TotalPrice         string
	Currency           string
	CreatedAt          time.Time
}
