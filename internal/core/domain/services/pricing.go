package services

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/core/domain/model/order"
	"swiftparcel/internal/pkg/errs"
)

// Tariff holds the pricing constants. All rates are exact decimals; the
// multipliers express the weekend and express surcharges as fractions of the
// subtotal.
type Tariff struct {
	BasePrice       decimal.Decimal
	PricePerKm      decimal.Decimal
	FreeDistanceKm  decimal.Decimal
	PricePerKg      decimal.Decimal
	FreeWeightKg    decimal.Decimal
	FragileCharge   decimal.Decimal
	InsuranceCharge decimal.Decimal

	WeekendRate decimal.Decimal
	ExpressRate decimal.Decimal

	BaseEtaMinutes    int
	AverageSpeedKmh   int
	ExpressTimeFactor decimal.Decimal
	MinEtaMinutes     int
}

// DefaultTariff returns the production tariff.
func DefaultTariff() Tariff {
	return Tariff{
		BasePrice:       decimal.NewFromInt(150),
		PricePerKm:      decimal.NewFromInt(30),
		FreeDistanceKm:  decimal.NewFromInt(2),
		PricePerKg:      decimal.NewFromInt(10),
		FreeWeightKg:    decimal.NewFromInt(5),
		FragileCharge:   decimal.NewFromInt(50),
		InsuranceCharge: decimal.NewFromInt(100),

		WeekendRate: decimal.NewFromFloat(0.20),
		ExpressRate: decimal.NewFromFloat(0.50),

		BaseEtaMinutes:    15,
		AverageSpeedKmh:   30,
		ExpressTimeFactor: decimal.NewFromFloat(0.7),
		MinEtaMinutes:     30,
	}
}

// PriceBreakdown itemizes a quote. The charges sum to Subtotal; the weekend
// and express surcharges are both computed off that same subtotal, so they
// stack additively rather than compounding.
type PriceBreakdown struct {
	BasePrice       kernel.Money
	DistanceCharge  kernel.Money
	WeightCharge    kernel.Money
	FragileCharge   kernel.Money
	InsuranceCharge kernel.Money

	Subtotal         kernel.Money
	WeekendSurcharge kernel.Money
	ExpressSurcharge kernel.Money

	Total kernel.Money

	DistanceKm     float64
	WeightCategory order.WeightCategory
	EtaMinutes     int
}

// PricingEngine is a stateless domain service computing delivery quotes from
// distance, parcel characteristics and the pickup time.
type PricingEngine struct {
	tariff Tariff
}

// NewPricingEngine creates a PricingEngine with the given tariff.
func NewPricingEngine(tariff Tariff) PricingEngine {
	return PricingEngine{tariff: tariff}
}

// Quote computes the full price breakdown for a delivery.
//
// The price model:
//   - base price, always charged
//   - distance charge per km beyond the free 2 km
//   - weight charge per kg beyond the free 5 kg
//   - flat fragile and insurance charges when requested
//   - weekend and express surcharges as percentages of the subtotal above,
//     each applied to the same subtotal
//
// at determines whether the weekend surcharge applies (Saturday or Sunday in
// the time's own location).
func (e PricingEngine) Quote(
	distanceKm float64,
	parcel order.Parcel,
	at time.Time,
) (PriceBreakdown, error) {
	if err := parcel.Validate(); err != nil {
		return PriceBreakdown{}, err
	}
	if distanceKm <= 0 || math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) {
		return PriceBreakdown{}, errs.NewValueIsInvalidError("distance_km")
	}

	distance := decimal.NewFromFloat(distanceKm)
	weight := decimal.NewFromFloat(parcel.WeightKg())

	distanceCharge := chargeBeyondFree(distance, e.tariff.FreeDistanceKm, e.tariff.PricePerKm)
	weightCharge := chargeBeyondFree(weight, e.tariff.FreeWeightKg, e.tariff.PricePerKg)

	fragileCharge := decimal.Zero
	if parcel.Fragile() {
		fragileCharge = e.tariff.FragileCharge
	}
	insuranceCharge := decimal.Zero
	if parcel.InsuranceRequired() {
		insuranceCharge = e.tariff.InsuranceCharge
	}

	subtotal := e.tariff.BasePrice.
		Add(distanceCharge).
		Add(weightCharge).
		Add(fragileCharge).
		Add(insuranceCharge)

	weekendSurcharge := decimal.Zero
	if IsWeekend(at) {
		weekendSurcharge = subtotal.Mul(e.tariff.WeekendRate).Round(2)
	}
	expressSurcharge := decimal.Zero
	if parcel.Express() {
		expressSurcharge = subtotal.Mul(e.tariff.ExpressRate).Round(2)
	}

	total := subtotal.Add(weekendSurcharge).Add(expressSurcharge)

	breakdown := PriceBreakdown{
		DistanceKm:     distanceKm,
		WeightCategory: parcel.WeightCategory(),
		EtaMinutes:     e.EstimateDeliveryMinutes(distanceKm, parcel.Express()),
	}

	var err error
	if breakdown.BasePrice, err = kernel.NewMoney(e.tariff.BasePrice); err != nil {
		return PriceBreakdown{}, err
	}
	if breakdown.DistanceCharge, err = kernel.NewMoney(distanceCharge); err != nil {
		return PriceBreakdown{}, err
	}
	if breakdown.WeightCharge, err = kernel.NewMoney(weightCharge); err != nil {
		return PriceBreakdown{}, err
	}
	if breakdown.FragileCharge, err = kernel.NewMoney(fragileCharge); err != nil {
		return PriceBreakdown{}, err
	}
	if breakdown.InsuranceCharge, err = kernel.NewMoney(insuranceCharge); err != nil {
		return PriceBreakdown{}, err
	}
	if breakdown.Subtotal, err = kernel.NewMoney(subtotal); err != nil {
		return PriceBreakdown{}, err
	}
	if breakdown.WeekendSurcharge, err = kernel.NewMoney(weekendSurcharge); err != nil {
		return PriceBreakdown{}, err
	}
	if breakdown.ExpressSurcharge, err = kernel.NewMoney(expressSurcharge); err != nil {
		return PriceBreakdown{}, err
	}
	if breakdown.Total, err = kernel.NewMoney(total); err != nil {
		return PriceBreakdown{}, err
	}

	return breakdown, nil
}

// EstimateDeliveryMinutes estimates the delivery ETA: a fixed handling window
// plus travel time at the average city speed, compressed for express
// deliveries, with a floor so the promise stays realistic.
func (e PricingEngine) EstimateDeliveryMinutes(distanceKm float64, express bool) int {
	travel := decimal.NewFromFloat(distanceKm).
		Div(decimal.NewFromInt(int64(e.tariff.AverageSpeedKmh))).
		Mul(decimal.NewFromInt(60))

	if express {
		travel = travel.Mul(e.tariff.ExpressTimeFactor)
	}

	eta := decimal.NewFromInt(int64(e.tariff.BaseEtaMinutes)).Add(travel)

	minutes := int(eta.Ceil().IntPart())
	if minutes < e.tariff.MinEtaMinutes {
		return e.tariff.MinEtaMinutes
	}
	return minutes
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	weekday := t.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// chargeBeyondFree prices the portion of value beyond the free allowance.
func chargeBeyondFree(value, free, rate decimal.Decimal) decimal.Decimal {
	billable := value.Sub(free)
	if billable.IsNegative() {
		return decimal.Zero
	}
	return billable.Mul(rate).Round(2)
}
