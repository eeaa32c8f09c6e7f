package courier

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/pkg/errs"
	"swiftparcel/internal/pkg/guard"
)

const (
	// RatingMin and RatingMax bound a single delivery rating.
	RatingMin = 1.0
	RatingMax = 5.0

	nameMinLen = 2
	nameMaxLen = 100
)

var (
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")

	// ErrCourierNotVerified is returned when an unverified courier attempts an
	// operation reserved for verified couriers.
	ErrCourierNotVerified = errors.New("courier is not verified")
)

// Courier represents a delivery rider in the system. It is an aggregate root
// managing the courier's identity, vehicle, availability and last reported
// position.
//
// Business rules:
//   - a courier is eligible for assignment only while verified, available and
//     with a known position
//   - taking an order makes the courier unavailable until the delivery
//     completes or the order is cancelled
//   - completed deliveries increment the lifetime counter and feed the
//     running rating average
type Courier struct {
	id    kernel.UUID
	name  string
	phone kernel.Phone
	email string

	vehicle Vehicle

	isAvailable bool
	isVerified  bool
	position    *kernel.GeoPoint

	totalDeliveries int
	ratingSum       float64
	ratingCount     int

	guard guard.ConstructorGuard
}

// NewCourier creates a new Courier. Fresh couriers start available but
// unverified and with no known position, so they are not yet eligible for
// assignment.
func NewCourier(
	id kernel.UUID,
	name string,
	phone kernel.Phone,
	email string,
	vehicle Vehicle,
) (*Courier, error) {
	courier := &Courier{
		isAvailable: true,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		courier.setPhone(phone),
		courier.setEmail(email),
		courier.setVehicle(vehicle),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage.
func RestoreCourier(
	id kernel.UUID,
	name string,
	phone kernel.Phone,
	email string,
	vehicle Vehicle,
	isAvailable bool,
	isVerified bool,
	position *kernel.GeoPoint,
	totalDeliveries int,
	ratingSum float64,
	ratingCount int,
) (*Courier, error) {
	courier := &Courier{
		isAvailable: isAvailable,
		isVerified:  isVerified,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		courier.setPhone(phone),
		courier.setEmail(email),
		courier.setVehicle(vehicle),
		courier.setCounters(totalDeliveries, ratingSum, ratingCount),
	); err != nil {
		return nil, err
	}

	if position != nil {
		if err := position.Validate(); err != nil {
			return nil, err
		}
		courier.position = position
	}

	return courier, nil
}

// Validate checks that the Courier was created through a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares two couriers by identity.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's display name.
func (c *Courier) Name() string {
	return c.name
}

// Phone returns the courier's mobile number.
func (c *Courier) Phone() kernel.Phone {
	return c.phone
}

// Email returns the courier's email address.
func (c *Courier) Email() string {
	return c.email
}

// Vehicle returns the courier's transport details.
func (c *Courier) Vehicle() Vehicle {
	return c.vehicle
}

// IsAvailable reports whether the courier is free to take an order.
func (c *Courier) IsAvailable() bool {
	return c.isAvailable
}

// IsVerified reports whether the courier passed onboarding verification.
func (c *Courier) IsVerified() bool {
	return c.isVerified
}

// Position returns the last reported position, or nil when unknown.
func (c *Courier) Position() *kernel.GeoPoint {
	return c.position
}

// TotalDeliveries returns the lifetime count of completed deliveries.
func (c *Courier) TotalDeliveries() int {
	return c.totalDeliveries
}

// Rating returns the running average of delivery ratings, or 0 before the
// first rating arrives.
func (c *Courier) Rating() float64 {
	if c.ratingCount == 0 {
		return 0
	}
	return c.ratingSum / float64(c.ratingCount)
}

// RatingSum and RatingCount expose the raw accumulator for persistence.
func (c *Courier) RatingSum() float64 {
	return c.ratingSum
}

// RatingCount returns how many ratings the courier has received.
func (c *Courier) RatingCount() int {
	return c.ratingCount
}

// IsEligible reports whether the courier can be considered for assignment:
// verified, available and with a known position.
func (c *Courier) IsEligible() bool {
	return c.isVerified && c.isAvailable && c.position != nil
}

// DistanceToKm returns the great-circle distance from the courier's last
// reported position to the given point. Fails when the position is unknown.
func (c *Courier) DistanceToKm(point kernel.GeoPoint) (float64, error) {
	if c.position == nil {
		return 0, errs.NewValueIsRequiredError("courier position")
	}
	return c.position.DistanceKm(point)
}

// Verify marks the courier as having passed onboarding verification.
func (c *Courier) Verify() {
	c.isVerified = true
}

// ReportLocation updates the courier's last known position.
func (c *Courier) ReportLocation(position kernel.GeoPoint) error {
	if err := position.Validate(); err != nil {
		return err
	}

	c.position = &position
	return nil
}

// MarkBusy removes the courier from the assignment pool. Called when an order
// is assigned to them.
func (c *Courier) MarkBusy() error {
	if !c.isVerified {
		return ErrCourierNotVerified
	}

	c.isAvailable = false
	return nil
}

// MarkAvailable returns the courier to the assignment pool, e.g. after the
// order they were carrying is cancelled.
func (c *Courier) MarkAvailable() {
	c.isAvailable = true
}

// CompleteDelivery records a finished delivery: the lifetime counter grows
// and the courier becomes available again.
func (c *Courier) CompleteDelivery() {
	c.totalDeliveries++
	c.isAvailable = true
}

// AddRating folds a delivery rating in [1, 5] into the running average.
func (c *Courier) AddRating(rating float64) error {
	if rating < RatingMin || rating > RatingMax {
		return errs.NewValueIsOutOfRangeError("rating", rating, RatingMin, RatingMax)
	}

	c.ratingSum += rating
	c.ratingCount++
	return nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if len(name) < nameMinLen || len(name) > nameMaxLen {
		return errs.NewValueIsInvalidErrorWithCause("name",
			fmt.Errorf("length must be between %d and %d characters", nameMinLen, nameMaxLen))
	}

	c.name = name
	return nil
}

func (c *Courier) setPhone(phone kernel.Phone) error {
	if err := phone.Validate(); err != nil {
		return err
	}
	c.phone = phone
	return nil
}

func (c *Courier) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}

	c.email = email
	return nil
}

func (c *Courier) setVehicle(vehicle Vehicle) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}
	c.vehicle = vehicle
	return nil
}

func (c *Courier) setCounters(totalDeliveries int, ratingSum float64, ratingCount int) error {
	if totalDeliveries < 0 {
		return errs.NewValueIsInvalidError("total_deliveries")
	}
	if ratingCount < 0 || ratingSum < 0 {
		return errs.NewValueIsInvalidError("rating")
	}

	c.totalDeliveries = totalDeliveries
	c.ratingSum = ratingSum
	c.ratingCount = ratingCount
	return nil
}
