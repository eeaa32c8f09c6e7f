package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrCourierAlreadyAssigned is returned when assigning a courier to an
	// order that already has one.
	ErrCourierAlreadyAssigned = errors.New("order already has an assigned courier")

	// ErrDestinationLocked is returned when changing the destination of an
	// order that has progressed past Assigned.
	ErrDestinationLocked = errors.New("destination can only be changed while the order is pending or assigned")
)

// Timeline records when each lifecycle transition happened. CreatedAt is
// always set; the others are set by the transition that owns them.
type Timeline struct {
	CreatedAt   time.Time
	AssignedAt  *time.Time
	PickedUpAt  *time.Time
	InTransitAt *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
}

// Order is the aggregate root for a single parcel delivery. It owns the
// lifecycle state machine and the invariants that tie courier assignment to
// status.
//
// Invariants:
//   - pickup and destination coordinates differ (enforced by Route)
//   - a courier is set iff the status is Assigned, PickedUp, InTransit or Delivered
//   - the price and distance are always those computed by the pricing engine
//     for the current route and parcel
//   - status changes go through the single transition table; illegal requests
//     fail and leave the order unmodified
type Order struct {
	id             kernel.UUID
	trackingNumber string
	customerID     kernel.UUID
	courierID      *kernel.UUID

	route  Route
	parcel Parcel

	distanceKm float64
	totalPrice kernel.Money

	status   Status
	timeline Timeline

	isConstructed bool
}

// NewOrder creates a Pending order with validation. The distance and total
// price are those quoted by the pricing engine for the given route and
// parcel; the aggregate does not recompute them.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	trackingNumber string,
	route Route,
	parcel Parcel,
	distanceKm float64,
	totalPrice kernel.Money,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		timeline:      Timeline{CreatedAt: time.Now().UTC()},
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setTrackingNumber(trackingNumber),
		o.setRoute(route),
		o.setParcel(parcel),
		o.setPricing(distanceKm, totalPrice),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence, including its courier
// assignment and transition timestamps. The status/courier consistency
// invariant is re-checked so corrupt rows cannot masquerade as valid
// aggregates.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	trackingNumber string,
	route Route,
	parcel Parcel,
	distanceKm float64,
	totalPrice kernel.Money,
	status Status,
	courierID *kernel.UUID,
	timeline Timeline,
) (*Order, error) {
	o := &Order{
		timeline:      timeline,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setTrackingNumber(trackingNumber),
		o.setRoute(route),
		o.setParcel(parcel),
		o.setPricing(distanceKm, totalPrice),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
		o.courierID = courierID
	}

	if err := status.ValidateCanHaveCourier(o.courierID != nil); err != nil {
		return nil, err
	}

	return o, nil
}

// NewTrackingNumber generates a human-facing tracking number like
// "TRK-9F2C41A08B". It is distinct from the internal order id.
func NewTrackingNumber() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TRK-" + strings.ToUpper(raw[:10])
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TrackingNumber returns the human-facing tracking number.
func (o *Order) TrackingNumber() string {
	return o.trackingNumber
}

// CustomerID returns the owning customer's id.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Courier returns the assigned courier's id, or nil while unassigned.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// Route returns the pickup/destination pair.
func (o *Order) Route() Route {
	return o.route
}

// Parcel returns the parcel details.
func (o *Order) Parcel() Parcel {
	return o.parcel
}

// DistanceKm returns the quoted delivery distance.
func (o *Order) DistanceKm() float64 {
	return o.distanceKm
}

// TotalPrice returns the quoted total price.
func (o *Order) TotalPrice() kernel.Money {
	return o.totalPrice
}

// WeightCategory returns the display bucket derived from the parcel weight.
func (o *Order) WeightCategory() WeightCategory {
	return o.parcel.WeightCategory()
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Timeline returns the transition timestamps recorded so far.
func (o *Order) Timeline() Timeline {
	return o.timeline
}

// Assign assigns a courier and moves the order to Assigned.
//
// Business rules:
//   - the courier id must be valid
//   - the order must not already have a courier (ErrCourierAlreadyAssigned)
//   - the transition table must allow moving to Assigned
func (o *Order) Assign(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if o.courierID != nil {
		return ErrCourierAlreadyAssigned
	}

	newStatus, err := o.status.TransitionTo(Assigned)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus
	o.courierID = &courierID
	o.timeline.AssignedAt = &now
	return nil
}

// MarkPickedUp records that the courier collected the parcel.
func (o *Order) MarkPickedUp() error {
	newStatus, err := o.status.TransitionTo(PickedUp)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus
	o.timeline.PickedUpAt = &now
	return nil
}

// MarkInTransit records that the parcel is on its way to the destination.
func (o *Order) MarkInTransit() error {
	newStatus, err := o.status.TransitionTo(InTransit)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus
	o.timeline.InTransitAt = &now
	return nil
}

// MarkDelivered records successful delivery. Terminal.
func (o *Order) MarkDelivered() error {
	newStatus, err := o.status.TransitionTo(Delivered)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus
	o.timeline.DeliveredAt = &now
	return nil
}

// Cancel cancels the order. Terminal. The courier, if any, is released so the
// status/courier invariant keeps holding.
func (o *Order) Cancel() error {
	newStatus, err := o.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus
	o.courierID = nil
	o.timeline.CancelledAt = &now
	return nil
}

// ApplyStatus performs the lifecycle transition to target through the
// corresponding named method. Assigned is not reachable this way; courier
// assignment goes through the assignment engine so its own invariants apply.
func (o *Order) ApplyStatus(target Status) error {
	switch target {
	case PickedUp:
		return o.MarkPickedUp()
	case InTransit:
		return o.MarkInTransit()
	case Delivered:
		return o.MarkDelivered()
	case Cancelled:
		return o.Cancel()
	case Unknown, Pending, Assigned:
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s cannot be requested directly", target.String()))
	}
	return errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%d is not a valid status", target))
}

// ChangeDestination replaces the destination while the order is still Pending
// or Assigned. The caller is responsible for repricing afterwards.
func (o *Order) ChangeDestination(destination kernel.GeoPoint, address string) error {
	if o.status != Pending && o.status != Assigned {
		return ErrDestinationLocked
	}

	route, err := o.route.WithDestination(destination, address)
	if err != nil {
		return err
	}

	o.route = route
	return nil
}

// Reprice updates the quoted distance and total price, e.g. after a
// destination change.
func (o *Order) Reprice(distanceKm float64, totalPrice kernel.Money) error {
	return o.setPricing(distanceKm, totalPrice)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer_id", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setTrackingNumber(trackingNumber string) error {
	if strings.TrimSpace(trackingNumber) == "" {
		return errs.NewValueIsRequiredError("tracking_number")
	}
	o.trackingNumber = trackingNumber
	return nil
}

func (o *Order) setRoute(route Route) error {
	if err := route.Validate(); err != nil {
		return err
	}
	o.route = route
	return nil
}

func (o *Order) setParcel(parcel Parcel) error {
	if err := parcel.Validate(); err != nil {
		return err
	}
	o.parcel = parcel
	return nil
}

func (o *Order) setPricing(distanceKm float64, totalPrice kernel.Money) error {
	if distanceKm <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("distance_km",
			fmt.Errorf("%f is not greater than 0", distanceKm))
	}

	o.distanceKm = distanceKm
	o.totalPrice = totalPrice
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
