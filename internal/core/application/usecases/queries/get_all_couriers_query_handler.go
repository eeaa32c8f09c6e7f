package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"swiftparcel/internal/core/domain/model/kernel"
)

// GetAllCouriersQueryHandler retrieves the courier fleet from the database.
type GetAllCouriersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllCouriersQueryHandler creates a handler for fleet queries.
func NewGetAllCouriersQueryHandler(db *gorm.DB) GetAllCouriersQueryHandler {
	return GetAllCouriersQueryHandler{db: db}
}

// Handle executes the fleet listing. Results are sorted by name for stable
// dispatch screens.
func (h GetAllCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetAllCouriersQuery,
) ([]GetAllCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	couriers := make([]GetAllCouriersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			vehicle_type,
			is_available,
			is_verified,
			latitude,
			longitude,
			total_deliveries,
			rating_sum,
			rating_count
		FROM couriers
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetAllCouriersQueryResponse
		var id uuid.UUID
		var ratingSum float64
		var ratingCount int

		err = rows.Scan(
			&id,
			&response.Name,
			&response.VehicleType,
			&response.IsAvailable,
			&response.IsVerified,
			&response.Latitude,
			&response.Longitude,
			&response.TotalDeliveries,
			&ratingSum,
			&ratingCount,
		)
		if err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = courierID

		if ratingCount > 0 {
			response.Rating = ratingSum / float64(ratingCount)
		}

		couriers = append(couriers, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return couriers, nil
}
