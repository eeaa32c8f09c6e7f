// Package courierrepo persists courier aggregates.
package courierrepo

import (
	"github.com/google/uuid"

	"swiftparcel/internal/core/domain/model/courier"
	"swiftparcel/internal/core/domain/model/kernel"
)

// CourierDTO is the database row for a courier aggregate.
type CourierDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string
	Phone             string `gorm:"uniqueIndex"`
	Email             string
	VehicleType       string
	RegistrationPlate string
	LicenseNumber     string
	IsAvailable       bool `gorm:"index"`
	IsVerified        bool `gorm:"index"`
	Latitude          *float64
	Longitude         *float64
	TotalDeliveries   int
	RatingSum         float64
	RatingCount       int
}

// TableName overrides GORM's default naming to use "couriers".
func (CourierDTO) TableName() string {
	return "couriers"
}

func fromDomain(aggregate *courier.Courier) CourierDTO {
	var latitude, longitude *float64
	if position := aggregate.Position(); position != nil {
		lat := position.Latitude()
		lng := position.Longitude()
		latitude = &lat
		longitude = &lng
	}

	vehicle := aggregate.Vehicle()

	return CourierDTO{
		ID:                aggregate.ID().Bytes(),
		Name:              aggregate.Name(),
		Phone:             aggregate.Phone().String(),
		Email:             aggregate.Email(),
		VehicleType:       vehicle.Type().String(),
		RegistrationPlate: vehicle.RegistrationPlate(),
		LicenseNumber:     vehicle.LicenseNumber(),
		IsAvailable:       aggregate.IsAvailable(),
		IsVerified:        aggregate.IsVerified(),
		Latitude:          latitude,
		Longitude:         longitude,
		TotalDeliveries:   aggregate.TotalDeliveries(),
		RatingSum:         aggregate.RatingSum(),
		RatingCount:       aggregate.RatingCount(),
	}
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	phone, err := kernel.NewPhone(dto.Phone)
	if err != nil {
		return nil, err
	}

	vehicleType, err := courier.VehicleTypeFromString(dto.VehicleType)
	if err != nil {
		return nil, err
	}

	vehicle, err := courier.NewVehicle(vehicleType, dto.RegistrationPlate, dto.LicenseNumber)
	if err != nil {
		return nil, err
	}

	var position *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		position = &point
	}

	return courier.RestoreCourier(
		id, dto.Name, phone, dto.Email, vehicle,
		dto.IsAvailable, dto.IsVerified, position,
		dto.TotalDeliveries, dto.RatingSum, dto.RatingCount,
	)
}
