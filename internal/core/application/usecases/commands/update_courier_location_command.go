package commands

import (
	"errors"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/pkg/guard"
)

// ErrUpdateCourierLocationCommandIsNotConstructed is returned when the
// command was not created through the constructor.
var ErrUpdateCourierLocationCommandIsNotConstructed = errors.New(
	"UpdateCourierLocationCommand must be created via NewUpdateCourierLocationCommand constructor",
)

// UpdateCourierLocationCommand represents a position report from a courier's
// device.
type UpdateCourierLocationCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	position  kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateCourierLocationCommand creates a validated location report command.
func NewUpdateCourierLocationCommand(
	courierID kernel.UUID,
	latitude, longitude float64,
) (UpdateCourierLocationCommand, error) {
	cmd := UpdateCourierLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	position, pointErr := kernel.NewGeoPoint(latitude, longitude)

	if err := errors.Join(
		cmd.setCourierID(courierID),
		pointErr,
	); err != nil {
		return UpdateCourierLocationCommand{}, err
	}

	cmd.position = position
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCourierLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierLocationCommandIsNotConstructed)
}

// CourierID returns the reporting courier.
func (c UpdateCourierLocationCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Position returns the reported coordinates.
func (c UpdateCourierLocationCommand) Position() kernel.GeoPoint {
	return c.position
}

func (c *UpdateCourierLocationCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	c.courierID = courierID
	return nil
}
