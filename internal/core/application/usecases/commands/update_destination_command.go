package commands

import (
	"errors"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/pkg/guard"
)

// ErrUpdateDestinationCommandIsNotConstructed is returned when the command
// was not created through the constructor.
var ErrUpdateDestinationCommandIsNotConstructed = errors.New(
	"UpdateDestinationCommand must be created via NewUpdateDestinationCommand constructor",
)

// UpdateDestinationCommand represents a request to redirect an order to a new
// destination before the parcel is picked up.
type UpdateDestinationCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	destination kernel.GeoPoint
	address     string

	guard guard.ConstructorGuard
}

// NewUpdateDestinationCommand creates a validated destination update command.
// Address validation beyond presence happens in the domain when the route is
// rebuilt.
func NewUpdateDestinationCommand(
	orderID kernel.UUID,
	destinationLat, destinationLng float64,
	address string,
) (UpdateDestinationCommand, error) {
	cmd := UpdateDestinationCommand{
		address: address,
		guard:   guard.NewConstructorGuard(),
	}

	destination, pointErr := kernel.NewGeoPoint(destinationLat, destinationLng)

	if err := errors.Join(
		cmd.setOrderID(orderID),
		pointErr,
	); err != nil {
		return UpdateDestinationCommand{}, err
	}

	cmd.destination = destination
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDestinationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDestinationCommandIsNotConstructed)
}

// OrderID returns the order to redirect.
func (c UpdateDestinationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Destination returns the new destination coordinates.
func (c UpdateDestinationCommand) Destination() kernel.GeoPoint {
	return c.destination
}

// Address returns the new destination address.
func (c UpdateDestinationCommand) Address() string {
	return c.address
}

func (c *UpdateDestinationCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}
