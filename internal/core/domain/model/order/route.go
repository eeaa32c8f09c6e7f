package order

import (
	"errors"
	"fmt"
	"strings"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/pkg/errs"
	"swiftparcel/internal/pkg/guard"
)

const (
	addressMinLen = 5
	addressMaxLen = 255
)

var (
	// ErrRouteIsNotConstructed is returned when using an improperly initialized Route.
	ErrRouteIsNotConstructed = errs.NewValueIsRequiredError(
		"route must be created via NewRoute constructor")

	// ErrSameLocation is returned when pickup and destination coordinates coincide.
	ErrSameLocation = errs.NewValueIsInvalidErrorWithCause("destination",
		errors.New("pickup and destination cannot be the same location"))
)

// Route is a value object pairing the pickup and destination of a delivery:
// validated coordinates plus human-readable addresses. Pickup and destination
// must differ.
type Route struct { //nolint:recvcheck //using for validation
	pickup             kernel.GeoPoint
	pickupAddress      string
	destination        kernel.GeoPoint
	destinationAddress string

	guard guard.ConstructorGuard
}

// NewRoute creates a validated Route. Both points must be properly
// constructed GeoPoints, both addresses must be 5–255 characters after
// trimming, and the two coordinate pairs must not be identical.
func NewRoute(
	pickup kernel.GeoPoint,
	pickupAddress string,
	destination kernel.GeoPoint,
	destinationAddress string,
) (Route, error) {
	route := Route{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		route.setPickup(pickup, pickupAddress),
		route.setDestination(destination, destinationAddress),
	); err != nil {
		return Route{}, err
	}

	same, err := pickup.IsEqual(destination)
	if err != nil {
		return Route{}, err
	}
	if same {
		return Route{}, ErrSameLocation
	}

	return route, nil
}

// Validate checks that the Route was created through the constructor.
func (r Route) Validate() error {
	return r.guard.Validate(ErrRouteIsNotConstructed)
}

// Pickup returns the pickup coordinates.
func (r Route) Pickup() kernel.GeoPoint {
	return r.pickup
}

// PickupAddress returns the human-readable pickup address.
func (r Route) PickupAddress() string {
	return r.pickupAddress
}

// Destination returns the destination coordinates.
func (r Route) Destination() kernel.GeoPoint {
	return r.destination
}

// DestinationAddress returns the human-readable destination address.
func (r Route) DestinationAddress() string {
	return r.destinationAddress
}

// WithDestination returns a copy of the route pointing at a new destination.
// The same validation rules apply as at construction.
func (r Route) WithDestination(destination kernel.GeoPoint, address string) (Route, error) {
	if err := r.Validate(); err != nil {
		return Route{}, err
	}

	return NewRoute(r.pickup, r.pickupAddress, destination, address)
}

func (r *Route) setPickup(point kernel.GeoPoint, address string) error {
	if err := point.Validate(); err != nil {
		return err
	}
	if err := validateAddress("pickup_address", address); err != nil {
		return err
	}

	r.pickup = point
	r.pickupAddress = strings.TrimSpace(address)
	return nil
}

func (r *Route) setDestination(point kernel.GeoPoint, address string) error {
	if err := point.Validate(); err != nil {
		return err
	}
	if err := validateAddress("destination_address", address); err != nil {
		return err
	}

	r.destination = point
	r.destinationAddress = strings.TrimSpace(address)
	return nil
}

func validateAddress(field, address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError(field)
	}
	if len(address) < addressMinLen || len(address) > addressMaxLen {
		return errs.NewValueIsInvalidErrorWithCause(field,
			fmt.Errorf("length must be between %d and %d characters", addressMinLen, addressMaxLen))
	}
	return nil
}
