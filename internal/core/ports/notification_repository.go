package ports

import (
	"context"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for notifications.
// The store is append-only apart from the read flag.
type NotificationRepository interface {
	// Add persists a new notification.
	Add(ctx context.Context, aggregate *notification.Notification) error

	// Update persists the read flag of an existing notification.
	Update(ctx context.Context, aggregate *notification.Notification) error

	// Get retrieves a notification by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error)

	// GetAllByCustomer retrieves a customer's notifications, newest first.
	GetAllByCustomer(ctx context.Context, customerID kernel.UUID) ([]*notification.Notification, error)
}
