package order

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"swiftparcel/internal/pkg/errs"
	"swiftparcel/internal/pkg/guard"
)

const (
	// WeightMaxKg is the heaviest parcel the platform accepts.
	WeightMaxKg = 100.0

	descriptionMinLen = 3
	descriptionMaxLen = 500
)

// dimensionsPattern matches "LxWxH" with positive decimal components, e.g.
// "30x20x15" or "30.5x20x15.25".
var dimensionsPattern = regexp.MustCompile(`^\d+(\.\d+)?x\d+(\.\d+)?x\d+(\.\d+)?$`)

// ErrParcelIsNotConstructed is returned when using an improperly initialized Parcel.
var ErrParcelIsNotConstructed = errs.NewValueIsRequiredError(
	"parcel must be created via NewParcel constructor")

// Parcel is a value object describing the package being delivered: its weight,
// optional description and dimensions, and the handling flags that feed the
// pricing engine.
type Parcel struct { //nolint:recvcheck //using for validation
	weightKg          float64
	description       string
	dimensions        string
	fragile           bool
	insuranceRequired bool
	express           bool

	guard guard.ConstructorGuard
}

// NewParcel creates a Parcel with validation. Weight must be in (0, 100] kg.
// Description is optional; when present it must be 3–500 characters after
// trimming. Dimensions are optional; when present they must be "LxWxH" with
// positive decimal components in centimeters. Field errors are aggregated, so
// a caller sees every violation at once.
func NewParcel(
	weightKg float64,
	description string,
	dimensions string,
	fragile bool,
	insuranceRequired bool,
	express bool,
) (Parcel, error) {
	parcel := Parcel{
		fragile:           fragile,
		insuranceRequired: insuranceRequired,
		express:           express,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		parcel.setWeightKg(weightKg),
		parcel.setDescription(description),
		parcel.setDimensions(dimensions),
	); err != nil {
		return Parcel{}, err
	}

	return parcel, nil
}

// Validate checks that the Parcel was created through the constructor.
func (p Parcel) Validate() error {
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

// WeightKg returns the parcel weight in kilograms.
func (p Parcel) WeightKg() float64 {
	return p.weightKg
}

// Description returns the optional parcel description ("" when absent).
func (p Parcel) Description() string {
	return p.description
}

// Dimensions returns the optional "LxWxH" dimensions string ("" when absent).
func (p Parcel) Dimensions() string {
	return p.dimensions
}

// Fragile reports whether the parcel needs fragile handling.
func (p Parcel) Fragile() bool {
	return p.fragile
}

// InsuranceRequired reports whether the customer requested insurance.
func (p Parcel) InsuranceRequired() bool {
	return p.insuranceRequired
}

// Express reports whether the customer requested express delivery.
func (p Parcel) Express() bool {
	return p.express
}

// WeightCategory returns the display bucket for the parcel weight.
func (p Parcel) WeightCategory() WeightCategory {
	return WeightCategoryFor(p.weightKg)
}

func (p *Parcel) setWeightKg(weightKg float64) error {
	if weightKg <= 0 || weightKg > WeightMaxKg {
		return errs.NewValueIsOutOfRangeError("weight_kg", weightKg, 0, WeightMaxKg)
	}
	p.weightKg = weightKg
	return nil
}

func (p *Parcel) setDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil
	}

	if len(description) < descriptionMinLen || len(description) > descriptionMaxLen {
		return errs.NewValueIsInvalidErrorWithCause("parcel_description",
			fmt.Errorf("length must be between %d and %d characters", descriptionMinLen, descriptionMaxLen))
	}

	p.description = description
	return nil
}

func (p *Parcel) setDimensions(dimensions string) error {
	dimensions = strings.ToLower(strings.ReplaceAll(dimensions, " ", ""))
	if dimensions == "" {
		return nil
	}

	if !dimensionsPattern.MatchString(dimensions) {
		return errs.NewValueIsInvalidErrorWithCause("parcel_dimensions",
			errors.New("expected format LxWxH with positive decimals, in cm"))
	}

	for _, side := range strings.Split(dimensions, "x") {
		value, err := strconv.ParseFloat(side, 64)
		if err != nil || value <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("parcel_dimensions",
				fmt.Errorf("side %q must be a positive decimal", side))
		}
	}

	p.dimensions = dimensions
	return nil
}
