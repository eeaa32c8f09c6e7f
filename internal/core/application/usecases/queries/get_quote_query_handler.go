package queries

import (
	"context"
	"log/slog"
	"time"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/core/domain/services"
	"swiftparcel/internal/core/ports"
)

// GetQuoteQueryHandler prices a prospective delivery. It is the read-side
// twin of order creation: same distance measurement, same tariff, no writes.
type GetQuoteQueryHandler struct {
	distanceProvider ports.DistanceProvider
	pricingEngine    services.PricingEngine
	logger           *slog.Logger
}

// NewGetQuoteQueryHandler creates a handler for quote queries.
func NewGetQuoteQueryHandler(
	distanceProvider ports.DistanceProvider,
	pricingEngine services.PricingEngine,
	logger *slog.Logger,
) GetQuoteQueryHandler {
	return GetQuoteQueryHandler{
		distanceProvider: distanceProvider,
		pricingEngine:    pricingEngine,
		logger:           logger,
	}
}

// Handle computes the quote. The road distance comes from the routing
// provider with a great-circle fallback, exactly as order creation does, so
// the quoted total matches what the order would cost.
func (h GetQuoteQueryHandler) Handle(ctx context.Context, query GetQuoteQuery) (GetQuoteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetQuoteQueryResponse{}, err
	}

	from := query.Pickup()
	to := query.Destination()

	distanceKm, err := h.distanceProvider.RoadDistanceKm(ctx, from, to)
	if err != nil || distanceKm <= 0 {
		h.logger.Warn("routing provider unavailable, falling back to great-circle distance",
			slog.Any("error", err))
		distanceKm = kernel.Haversine(from.Latitude(), from.Longitude(), to.Latitude(), to.Longitude())
	}

	breakdown, err := h.pricingEngine.Quote(distanceKm, query.Parcel(), time.Now())
	if err != nil {
		return GetQuoteQueryResponse{}, err
	}

	return GetQuoteQueryResponse{
		Breakdown:  breakdown,
		DistanceKm: distanceKm,
		EtaMinutes: breakdown.EtaMinutes,
	}, nil
}
