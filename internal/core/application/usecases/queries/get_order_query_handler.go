package queries

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/core/domain/model/order"
	"swiftparcel/internal/pkg/errs"
)

// GetOrderQueryHandler reads order detail straight from the database. Read
// models bypass the aggregate on purpose; they never mutate anything.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order detail queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the lookup. Returns errs.ErrObjectNotFound when no order
// has the given identifier.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			tracking_number,
			status,
			courier_id,
			pickup_address,
			destination_address,
			weight_kg,
			fragile,
			insurance_required,
			express,
			distance_km,
			total_price,
			currency,
			created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	response, err := scanOrderRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}

func scanOrderRow(row *sql.Row) (GetOrderQueryResponse, error) {
	var (
		response  GetOrderQueryResponse
		id        uuid.UUID
		customer  uuid.UUID
		courierID uuid.NullUUID
		createdAt time.Time
	)

	err := row.Scan(
		&id,
		&customer,
		&response.TrackingNumber,
		&response.Status,
		&courierID,
		&response.PickupAddress,
		&response.DestinationAddress,
		&response.WeightKg,
		&response.Fragile,
		&response.InsuranceRequired,
		&response.Express,
		&response.DistanceKm,
		&response.TotalPrice,
		&response.Currency,
		&createdAt,
	)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.ID = orderID

	customerID, err := kernel.UUIDFromBytes(customer[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.CustomerID = customerID

	if courierID.Valid {
		assignee, courierErr := kernel.UUIDFromBytes(courierID.UUID[:])
		if courierErr != nil {
			return GetOrderQueryResponse{}, courierErr
		}
		response.CourierID = &assignee
	}

	response.WeightCategory = string(order.WeightCategoryFor(response.WeightKg))
	response.CreatedAt = createdAt

	return response, nil
}
