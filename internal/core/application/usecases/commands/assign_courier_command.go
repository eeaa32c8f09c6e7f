package commands

import (
	"errors"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/pkg/guard"
)

// ErrAssignCourierCommandIsNotConstructed is returned when the command was
// not created through the constructor.
var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand represents a request to automatically assign the best
// available courier to a pending order.
type AssignCourierCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignCourierCommand creates a validated assignment command.
func NewAssignCourierCommand(orderID kernel.UUID) (AssignCourierCommand, error) {
	cmd := AssignCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return AssignCourierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

// OrderID returns the order to assign.
func (c AssignCourierCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *AssignCourierCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}
