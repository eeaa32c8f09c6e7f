package services

import (
	"errors"

	"swiftparcel/internal/core/domain/model/courier"
	"swiftparcel/internal/core/domain/model/kernel"
)

// DefaultMaxAssignmentDistanceKm bounds how far from the pickup a courier may
// be and still receive the order.
const DefaultMaxAssignmentDistanceKm = 20.0

// ErrNoCourierAvailable is returned when no eligible courier is within range
// of the pickup.
var ErrNoCourierAvailable = errors.New("no courier available within range")

// CourierDispatcher is a domain service selecting which courier should carry
// an order. Selection is deterministic: the nearest eligible courier within
// the maximum distance wins, and ties on distance break toward the lowest
// courier id.
type CourierDispatcher struct {
	maxDistanceKm float64
}

// NewCourierDispatcher creates a dispatcher with the default range.
func NewCourierDispatcher() CourierDispatcher {
	return CourierDispatcher{maxDistanceKm: DefaultMaxAssignmentDistanceKm}
}

// NewCourierDispatcherWithRange creates a dispatcher with a custom range.
func NewCourierDispatcherWithRange(maxDistanceKm float64) CourierDispatcher {
	return CourierDispatcher{maxDistanceKm: maxDistanceKm}
}

// SelectNearest picks the best courier for a pickup point. Couriers that are
// not eligible (unverified, busy, or without a reported position) are skipped
// silently; a courier in an invalid state fails the whole selection.
func (d CourierDispatcher) SelectNearest(
	pickup kernel.GeoPoint,
	couriers []*courier.Courier,
) (*courier.Courier, float64, error) {
	if err := pickup.Validate(); err != nil {
		return nil, 0, err
	}

	var (
		best         *courier.Courier
		bestDistance float64
	)

	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, 0, err
		}
		if !c.IsEligible() {
			continue
		}

		distance, err := c.DistanceToKm(pickup)
		if err != nil {
			return nil, 0, err
		}
		if distance > d.maxDistanceKm {
			continue
		}

		if best == nil || distance < bestDistance ||
			(distance == bestDistance && c.ID().String() < best.ID().String()) {
			best = c
			bestDistance = distance
		}
	}

	if best == nil {
		return nil, 0, ErrNoCourierAvailable
	}

	return best, bestDistance, nil
}
