package commands

import (
	"errors"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/core/domain/model/order"
	"swiftparcel/internal/pkg/guard"
)

// ErrCreateOrderCommandIsNotConstructed is returned when the command was not
// created through the constructor.
var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to create a new delivery order.
// Raw coordinates, addresses and parcel details are validated into domain
// value objects at construction, so a constructed command always carries a
// deliverable route and an acceptable parcel.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	route      order.Route
	parcel     order.Parcel

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a validated order creation command. All field
// violations are aggregated into a single error.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	pickupLat, pickupLng float64,
	pickupAddress string,
	destinationLat, destinationLng float64,
	destinationAddress string,
	weightKg float64,
	description string,
	dimensions string,
	fragile, insuranceRequired, express bool,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	pickup, pickupErr := kernel.NewGeoPoint(pickupLat, pickupLng)
	destination, destinationErr := kernel.NewGeoPoint(destinationLat, destinationLng)
	if err := errors.Join(pickupErr, destinationErr); err != nil {
		return CreateOrderCommand{}, err
	}

	route, routeErr := order.NewRoute(pickup, pickupAddress, destination, destinationAddress)
	parcel, parcelErr := order.NewParcel(weightKg, description, dimensions, fragile, insuranceRequired, express)

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		routeErr,
		parcelErr,
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.route = route
	cmd.parcel = parcel
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will carry.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the ordering customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Route returns the validated pickup/destination pair.
func (c CreateOrderCommand) Route() order.Route {
	return c.route
}

// Parcel returns the validated parcel details.
func (c CreateOrderCommand) Parcel() order.Parcel {
	return c.parcel
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}
