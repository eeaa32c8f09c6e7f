// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, and outbound gateways.
package ports

import (
	"context"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row for the duration of
	// the surrounding transaction. Concurrent assignment attempts serialize
	// on this lock.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByTrackingNumber retrieves an order by its public tracking number.
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*order.Order, error)

	// GetAllAwaitingAssignment retrieves Pending orders whose payment has
	// settled, oldest first. Unpaid orders are not dispatch candidates.
	GetAllAwaitingAssignment(ctx context.Context) ([]*order.Order, error)

	// GetAllByCustomer retrieves a customer's orders, newest first.
	GetAllByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)
}
