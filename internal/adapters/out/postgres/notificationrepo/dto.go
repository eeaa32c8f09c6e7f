// Package notificationrepo persists customer notifications.
package notificationrepo

import (
	"time"

	"github.com/google/uuid"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/core/domain/model/notification"
)

// NotificationDTO is the database row for a notification.
type NotificationDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID  `gorm:"type:uuid;index"`
	OrderID    *uuid.UUID `gorm:"type:uuid;index"`
	Kind       string
	Message    string
	IsRead     bool
	CreatedAt  time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming to use "notifications".
func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(aggregate *notification.Notification) NotificationDTO {
	var orderID *uuid.UUID
	if id := aggregate.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return NotificationDTO{
		ID:         aggregate.ID().Bytes(),
		CustomerID: aggregate.CustomerID().Bytes(),
		OrderID:    orderID,
		Kind:       aggregate.Kind().String(),
		Message:    aggregate.Message(),
		IsRead:     aggregate.IsRead(),
		CreatedAt:  aggregate.CreatedAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		linked, orderErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &linked
	}

	kind, err := notification.KindFromString(dto.Kind)
	if err != nil {
		return nil, err
	}

	return notification.RestoreNotification(
		id, customerID, orderID, kind, dto.Message, dto.IsRead, dto.CreatedAt,
	)
}
