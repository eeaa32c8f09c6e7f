package commands

import (
	"errors"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/pkg/guard"
)

// ErrManualAssignCourierCommandIsNotConstructed is returned when the command
// was not created through the constructor.
var ErrManualAssignCourierCommandIsNotConstructed = errors.New(
	"ManualAssignCourierCommand must be created via NewManualAssignCourierCommand constructor",
)

// ManualAssignCourierCommand represents an operator's request to hand an
// order to a specific courier, bypassing nearest-courier selection but not
// the eligibility rules.
type ManualAssignCourierCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewManualAssignCourierCommand creates a validated manual assignment command.
func NewManualAssignCourierCommand(orderID, courierID kernel.UUID) (ManualAssignCourierCommand, error) {
	cmd := ManualAssignCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCourierID(courierID),
	); err != nil {
		return ManualAssignCourierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ManualAssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrManualAssignCourierCommandIsNotConstructed)
}

// OrderID returns the order to assign.
func (c ManualAssignCourierCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the chosen courier.
func (c ManualAssignCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *ManualAssignCourierCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ManualAssignCourierCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	c.courierID = courierID
	return nil
}
