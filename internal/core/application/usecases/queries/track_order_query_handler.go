package queries

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"swiftparcel/internal/pkg/errs"
)

// TrackOrderQueryHandler serves the public tracking lookup. The courier join
// is a LEFT JOIN: unassigned orders track fine, just without a position.
type TrackOrderQueryHandler struct {
	db *gorm.DB
}

// NewTrackOrderQueryHandler creates a handler for tracking queries.
func NewTrackOrderQueryHandler(db *gorm.DB) TrackOrderQueryHandler {
	return TrackOrderQueryHandler{db: db}
}

// Handle executes the lookup. Returns errs.ErrObjectNotFound when the
// tracking number is unknown.
func (h TrackOrderQueryHandler) Handle(ctx context.Context, query TrackOrderQuery) (TrackOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackOrderQueryResponse{}, err
	}

	var response TrackOrderQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.tracking_number,
			o.status,
			o.pickup_address,
			o.destination_address,
			c.name,
			c.latitude,
			c.longitude,
			o.created_at,
			o.assigned_at,
			o.picked_up_at,
			o.in_transit_at,
			o.delivered_at,
			o.cancelled_at
		FROM orders o
		LEFT JOIN couriers c ON c.id = o.courier_id
		WHERE o.tracking_number = ?
	`, query.TrackingNumber()).Row()

	err := row.Scan(
		&response.TrackingNumber,
		&response.Status,
		&response.PickupAddress,
		&response.DestinationAddress,
		&response.CourierName,
		&response.CourierLat,
		&response.CourierLng,
		&response.CreatedAt,
		&response.AssignedAt,
		&response.PickedUpAt,
		&response.InTransitAt,
		&response.DeliveredAt,
		&response.CancelledAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return TrackOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.TrackingNumber())
		}
		return TrackOrderQueryResponse{}, err
	}

	return response, nil
}
