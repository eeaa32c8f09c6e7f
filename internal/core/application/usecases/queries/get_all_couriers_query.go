package queries

import (
	"errors"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/pkg/guard"
)

// ErrGetAllCouriersQueryIsNotConstructed is returned when the query was not
// created through the constructor.
var ErrGetAllCouriersQueryIsNotConstructed = errors.New(
	"GetAllCouriersQuery must be created via NewGetAllCouriersQuery constructor",
)

// GetAllCouriersQuery lists the courier fleet for the dispatch view.
type GetAllCouriersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllCouriersQuery creates a query to list all couriers.
func NewGetAllCouriersQuery() GetAllCouriersQuery {
	return GetAllCouriersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllCouriersQueryIsNotConstructed)
}

// GetAllCouriersQueryResponse is one courier row of the fleet view.
type GetAllCouriersQueryResponse struct {
	ID              kernel.UUID
	Name            string
	VehicleType     string
	IsAvailable     bool
	IsVerified      bool
	Latitude        *float64
	Longitude       *float64
	TotalDeliveries int
	Rating          float64
}
