package commands

import (
	"errors"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/pkg/guard"
)

// ErrMarkNotificationReadCommandIsNotConstructed is returned when the command
// was not created through the constructor.
var ErrMarkNotificationReadCommandIsNotConstructed = errors.New(
	"MarkNotificationReadCommand must be created via NewMarkNotificationReadCommand constructor",
)

// MarkNotificationReadCommand marks a single notification as read on behalf
// of the customer it belongs to.
type MarkNotificationReadCommand struct { //nolint:recvcheck //using for validation
	notificationID kernel.UUID
	customerID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkNotificationReadCommand creates a validated mark-read command.
func NewMarkNotificationReadCommand(
	notificationID kernel.UUID,
	customerID kernel.UUID,
) (MarkNotificationReadCommand, error) {
	cmd := MarkNotificationReadCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setNotificationID(notificationID),
		cmd.setCustomerID(customerID),
	); err != nil {
		return MarkNotificationReadCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkNotificationReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationReadCommandIsNotConstructed)
}

// NotificationID returns the notification to mark as read.
func (c MarkNotificationReadCommand) NotificationID() kernel.UUID {
	return c.notificationID
}

// CustomerID returns the customer claiming the notification.
func (c MarkNotificationReadCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c *MarkNotificationReadCommand) setNotificationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.notificationID = id
	return nil
}

func (c *MarkNotificationReadCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.customerID = id
	return nil
}
