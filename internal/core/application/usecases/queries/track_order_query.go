package queries

import (
	"errors"
	"strings"
	"time"

	"swiftparcel/internal/pkg/errs"
	"swiftparcel/internal/pkg/guard"
)

// ErrTrackOrderQueryIsNotConstructed is returned when the query was not
// created through the constructor.
var ErrTrackOrderQueryIsNotConstructed = errors.New(
	"TrackOrderQuery must be created via NewTrackOrderQuery constructor",
)

// TrackOrderQuery looks an order up by its public tracking number. This is
// the customer-facing lookup, so it exposes progress rather than full detail.
type TrackOrderQuery struct { //nolint:recvcheck //using for validation
	trackingNumber string

	guard guard.ConstructorGuard
}

// NewTrackOrderQuery creates a validated tracking query.
func NewTrackOrderQuery(trackingNumber string) (TrackOrderQuery, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return TrackOrderQuery{}, errs.NewValueIsRequiredError("tracking_number")
	}

	return TrackOrderQuery{
		trackingNumber: trackingNumber,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackOrderQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrderQueryIsNotConstructed)
}

// TrackingNumber returns the tracking number being looked up.
func (q TrackOrderQuery) TrackingNumber() string {
	return q.trackingNumber
}

// TrackOrderQueryResponse is the tracking read model: lifecycle progress,
// courier name and last reported position when one is assigned.
type TrackOrderQueryResponse struct {
	TrackingNumber     string
	Status             string
	PickupAddress      string
	DestinationAddress string
	CourierName        *string
	CourierLat         *float64
	CourierLng         *float64
	CreatedAt          time.Time
	AssignedAt         *time.Time
	PickedUpAt         *time.Time
	InTransitAt        *time.Time
	DeliveredAt        *time.Time
	CancelledAt        *time.Time
}
