package courier

import (
	"errors"
	"fmt"
	"strings"

	"swiftparcel/internal/pkg/errs"
	"swiftparcel/internal/pkg/guard"
)

// VehicleType identifies what the courier rides or drives. It feeds dispatch
// reporting only; eligibility and distance checks do not depend on it.
type VehicleType string

const (
	VehicleBicycle   VehicleType = "BICYCLE"
	VehicleMotorbike VehicleType = "MOTORBIKE"
	VehicleCar       VehicleType = "CAR"
	VehicleVan       VehicleType = "VAN"
)

// VehicleTypeFromString parses the wire representation, e.g. "MOTORBIKE".
func VehicleTypeFromString(s string) (VehicleType, error) {
	vt := VehicleType(strings.ToUpper(strings.TrimSpace(s)))
	if err := vt.Validate(); err != nil {
		return "", err
	}
	return vt, nil
}

// Validate checks the type against the known set.
func (vt VehicleType) Validate() error {
	switch vt {
	case VehicleBicycle, VehicleMotorbike, VehicleCar, VehicleVan:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("vehicle_type",
		fmt.Errorf("%q is not a valid vehicle type", string(vt)))
}

// String returns the wire name of the type.
func (vt VehicleType) String() string {
	return string(vt)
}

// ErrVehicleIsNotConstructed is returned when using an improperly initialized Vehicle.
var ErrVehicleIsNotConstructed = errs.NewValueIsRequiredError(
	"vehicle must be created via NewVehicle constructor")

// Vehicle is a value object describing the courier's transport. Motorized
// vehicles must carry a registration plate; bicycles must not.
type Vehicle struct { //nolint:recvcheck //using for validation
	vehicleType       VehicleType
	registrationPlate string
	licenseNumber     string

	guard guard.ConstructorGuard
}

// NewVehicle creates a validated Vehicle. The registration plate is required
// for motorized vehicles and rejected for bicycles. The license number is the
// courier's driving license and is required whenever a plate is.
func NewVehicle(vehicleType VehicleType, registrationPlate, licenseNumber string) (Vehicle, error) {
	vehicle := Vehicle{
		guard: guard.NewConstructorGuard(),
	}

	if err := vehicle.setVehicleType(vehicleType); err != nil {
		return Vehicle{}, err
	}

	registrationPlate = strings.ToUpper(strings.TrimSpace(registrationPlate))
	licenseNumber = strings.TrimSpace(licenseNumber)

	if vehicleType == VehicleBicycle {
		if registrationPlate != "" {
			return Vehicle{}, errs.NewValueIsInvalidErrorWithCause("registration_plate",
				errors.New("bicycles do not carry a registration plate"))
		}
	} else {
		if registrationPlate == "" {
			return Vehicle{}, errs.NewValueIsRequiredError("registration_plate")
		}
		if licenseNumber == "" {
			return Vehicle{}, errs.NewValueIsRequiredError("license_number")
		}
	}

	vehicle.registrationPlate = registrationPlate
	vehicle.licenseNumber = licenseNumber
	return vehicle, nil
}

// Validate checks that the Vehicle was created through the constructor.
func (v Vehicle) Validate() error {
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

// Type returns the vehicle type.
func (v Vehicle) Type() VehicleType {
	return v.vehicleType
}

// RegistrationPlate returns the plate ("" for bicycles).
func (v Vehicle) RegistrationPlate() string {
	return v.registrationPlate
}

// LicenseNumber returns the driving license number ("" for bicycles).
func (v Vehicle) LicenseNumber() string {
	return v.licenseNumber
}

func (v *Vehicle) setVehicleType(vehicleType VehicleType) error {
	if err := vehicleType.Validate(); err != nil {
		return err
	}
	v.vehicleType = vehicleType
	return nil
}
