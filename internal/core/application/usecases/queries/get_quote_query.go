package queries

import (
	"errors"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/core/domain/model/order"
	"swiftparcel/internal/core/domain/services"
	"swiftparcel/internal/pkg/guard"
)

// ErrGetQuoteQueryIsNotConstructed is returned when the query was not created
// through the constructor.
var ErrGetQuoteQueryIsNotConstructed = errors.New(
	"GetQuoteQuery must be created via NewGetQuoteQuery constructor",
)

// GetQuoteQuery asks what a delivery would cost without creating an order.
// It carries the same route and parcel inputs order creation does.
type GetQuoteQuery struct { //nolint:recvcheck //using for validation
	pickup      kernel.GeoPoint
	destination kernel.GeoPoint
	parcel      order.Parcel

	guard guard.ConstructorGuard
}

// NewGetQuoteQuery creates a validated quote query. The parcel fields go
// through the same validation as at order creation, so a quote that succeeds
// here will also price an identical order.
func NewGetQuoteQuery(
	pickupLat, pickupLng float64,
	destinationLat, destinationLng float64,
	weightKg float64,
	description string,
	dimensions string,
	fragile, insuranceRequired, express bool,
) (GetQuoteQuery, error) {
	pickup, pickupErr := kernel.NewGeoPoint(pickupLat, pickupLng)
	destination, destinationErr := kernel.NewGeoPoint(destinationLat, destinationLng)
	parcel, parcelErr := order.NewParcel(weightKg, description, dimensions, fragile, insuranceRequired, express)

	if err := errors.Join(pickupErr, destinationErr, parcelErr); err != nil {
		return GetQuoteQuery{}, err
	}

	return GetQuoteQuery{
		pickup:      pickup,
		destination: destination,
		parcel:      parcel,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetQuoteQuery) Validate() error {
	return q.guard.Validate(ErrGetQuoteQueryIsNotConstructed)
}

// Pickup returns the pickup coordinates.
func (q GetQuoteQuery) Pickup() kernel.GeoPoint {
	return q.pickup
}

// Destination returns the destination coordinates.
func (q GetQuoteQuery) Destination() kernel.GeoPoint {
	return q.destination
}

// Parcel returns the parcel being quoted.
func (q GetQuoteQuery) Parcel() order.Parcel {
	return q.parcel
}

// GetQuoteQueryResponse is the full price breakdown plus the delivery
// estimate. Nothing is persisted; the customer decides with this in hand.
type GetQuoteQueryResponse struct {
	Breakdown  services.PriceBreakdown
	DistanceKm float64
	EtaMinutes int
}
