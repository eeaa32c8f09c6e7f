// Package orderrepo persists order aggregates. It maps between the domain
// model and the orders table; all reads reconstruct full aggregates through
// the domain restore constructor, so invalid rows never leak into handlers.
package orderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/core/domain/model/order"
)

// OrderDTO is the database row for an order aggregate.
type OrderDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID     uuid.UUID  `gorm:"type:uuid;index"`
	TrackingNumber string     `gorm:"uniqueIndex"`
	Status         string     `gorm:"index"`
	CourierID      *uuid.UUID `gorm:"type:uuid;index"`

	PickupLat          float64
	PickupLng          float64
	PickupAddress      string
	DestinationLat     float64
	DestinationLng     float64
	DestinationAddress string

	WeightKg          float64
	Description       string
	Dimensions        string
	Fragile           bool
	InsuranceRequired bool
	Express           bool

	DistanceKm float64
	TotalPrice decimal.Decimal `gorm:"type:numeric(12,2)"`
	Currency   string

	CreatedAt   time.Time
	AssignedAt  *time.Time
	PickedUpAt  *time.Time
	InTransitAt *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	route := aggregate.Route()
	parcel := aggregate.Parcel()
	timeline := aggregate.Timeline()

	return OrderDTO{
		ID:             aggregate.ID().Bytes(),
		CustomerID:     aggregate.CustomerID().Bytes(),
		TrackingNumber: aggregate.TrackingNumber(),
		Status:         aggregate.Status().String(),
		CourierID:      courierID,

		PickupLat:          route.Pickup().Latitude(),
		PickupLng:          route.Pickup().Longitude(),
		PickupAddress:      route.PickupAddress(),
		DestinationLat:     route.Destination().Latitude(),
		DestinationLng:     route.Destination().Longitude(),
		DestinationAddress: route.DestinationAddress(),

		WeightKg:          parcel.WeightKg(),
		Description:       parcel.Description(),
		Dimensions:        parcel.Dimensions(),
		Fragile:           parcel.Fragile(),
		InsuranceRequired: parcel.InsuranceRequired(),
		Express:           parcel.Express(),

		DistanceKm: aggregate.DistanceKm(),
		TotalPrice: aggregate.TotalPrice().Amount(),
		Currency:   aggregate.TotalPrice().Currency(),

		CreatedAt:   timeline.CreatedAt,
		AssignedAt:  timeline.AssignedAt,
		PickedUpAt:  timeline.PickedUpAt,
		InTransitAt: timeline.InTransitAt,
		DeliveredAt: timeline.DeliveredAt,
		CancelledAt: timeline.CancelledAt,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		assignee, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &assignee
	}

	pickup, err := kernel.NewGeoPoint(dto.PickupLat, dto.PickupLng)
	if err != nil {
		return nil, err
	}

	destination, err := kernel.NewGeoPoint(dto.DestinationLat, dto.DestinationLng)
	if err != nil {
		return nil, err
	}

	route, err := order.NewRoute(pickup, dto.PickupAddress, destination, dto.DestinationAddress)
	if err != nil {
		return nil, err
	}

	parcel, err := order.NewParcel(
		dto.WeightKg, dto.Description, dto.Dimensions,
		dto.Fragile, dto.InsuranceRequired, dto.Express,
	)
	if err != nil {
		return nil, err
	}

	totalPrice, err := kernel.NewMoney(dto.TotalPrice)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	timeline := order.Timeline{
		CreatedAt:   dto.CreatedAt,
		AssignedAt:  dto.AssignedAt,
		PickedUpAt:  dto.PickedUpAt,
		InTransitAt: dto.InTransitAt,
		DeliveredAt: dto.DeliveredAt,
		CancelledAt: dto.CancelledAt,
	}

	return order.RestoreOrder(
		id, customerID, dto.TrackingNumber, route, parcel,
		dto.DistanceKm, totalPrice, status, courierID, timeline,
	)
}
