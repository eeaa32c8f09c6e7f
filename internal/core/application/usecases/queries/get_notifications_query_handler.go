package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"swiftparcel/internal/core/domain/model/kernel"
)

// GetNotificationsQueryHandler lists customer notifications from the database.
type GetNotificationsQueryHandler struct {
	db *gorm.DB
}

// NewGetNotificationsQueryHandler creates a handler for notification listings.
func NewGetNotificationsQueryHandler(db *gorm.DB) GetNotificationsQueryHandler {
	return GetNotificationsQueryHandler{db: db}
}

// Handle executes the listing, newest first.
func (h GetNotificationsQueryHandler) Handle(
	ctx context.Context,
	query GetNotificationsQuery,
) ([]GetNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stmt := `
		SELECT
			id,
			order_id,
			kind,
			message,
			is_read,
			created_at
		FROM notifications
		WHERE customer_id = ?
	`
	if query.UnreadOnly() {
		stmt += " AND is_read = false"
	}
	stmt += " ORDER BY created_at DESC"

	rows, err := h.db.WithContext(ctx).Raw(stmt, query.CustomerID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]GetNotificationsQueryResponse, 0)

	for rows.Next() {
		var response GetNotificationsQueryResponse
		var id uuid.UUID
		var orderID uuid.NullUUID

		err = rows.Scan(
			&id,
			&orderID,
			&response.Kind,
			&response.Message,
			&response.IsRead,
			&response.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		notificationID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = notificationID

		if orderID.Valid {
			linked, orderErr := kernel.UUIDFromBytes(orderID.UUID[:])
			if orderErr != nil {
				return nil, orderErr
			}
			response.OrderID = &linked
		}

		notifications = append(notifications, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}
