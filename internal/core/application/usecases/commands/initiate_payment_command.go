package commands

import (
	"errors"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/pkg/guard"
)

// ErrInitiatePaymentCommandIsNotConstructed is returned when the command was
// not created through the constructor.
var ErrInitiatePaymentCommandIsNotConstructed = errors.New(
	"InitiatePaymentCommand must be created via NewInitiatePaymentCommand constructor",
)

// InitiatePaymentCommand represents a request to collect an order's total
// from the customer's phone via an STK push.
type InitiatePaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID kernel.UUID
	orderID   kernel.UUID
	phone     kernel.Phone

	guard guard.ConstructorGuard
}

// NewInitiatePaymentCommand creates a validated payment initiation command.
// The phone number is normalized to the provider's canonical form here.
func NewInitiatePaymentCommand(
	paymentID kernel.UUID,
	orderID kernel.UUID,
	rawPhone string,
) (InitiatePaymentCommand, error) {
	cmd := InitiatePaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	phone, phoneErr := kernel.NewPhone(rawPhone)

	if err := errors.Join(
		cmd.setPaymentID(paymentID),
		cmd.setOrderID(orderID),
		phoneErr,
	); err != nil {
		return InitiatePaymentCommand{}, err
	}

	cmd.phone = phone
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c InitiatePaymentCommand) Validate() error {
	return c.guard.Validate(ErrInitiatePaymentCommandIsNotConstructed)
}

// PaymentID returns the identifier the new payment will carry.
func (c InitiatePaymentCommand) PaymentID() kernel.UUID {
	return c.paymentID
}

// OrderID returns the order being paid for.
func (c InitiatePaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Phone returns the normalized payer phone number.
func (c InitiatePaymentCommand) Phone() kernel.Phone {
	return c.phone
}

func (c *InitiatePaymentCommand) setPaymentID(paymentID kernel.UUID) error {
	if err := paymentID.Validate(); err != nil {
		return err
	}
	c.paymentID = paymentID
	return nil
}

func (c *InitiatePaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}
