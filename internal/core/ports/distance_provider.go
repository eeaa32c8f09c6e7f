package ports

import (
	"context"

	"swiftparcel/internal/core/domain/model/kernel"
)

// DistanceProvider estimates the road distance in kilometers between two
// points. Implementations call an external routing service; callers fall back
// to the great-circle distance when the provider is unavailable.
type DistanceProvider interface {
	RoadDistanceKm(ctx context.Context, from, to kernel.GeoPoint) (float64, error)
}
