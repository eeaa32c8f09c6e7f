package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/core/domain/model/notification"
	"swiftparcel/internal/core/domain/model/order"
	"swiftparcel/internal/core/domain/services"
	"swiftparcel/internal/core/ports"
)

// CreateOrderCommandHandler handles order creation: it measures the route,
// prices the delivery and persists the new Pending order together with the
// customer's notification.
type CreateOrderCommandHandler struct {
	uowFactory       OrderUoWFactory
	distanceProvider ports.DistanceProvider
	pricingEngine    services.PricingEngine
	logger           *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	distanceProvider ports.DistanceProvider,
	pricingEngine services.PricingEngine,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:       uowFactory,
		distanceProvider: distanceProvider,
		pricingEngine:    pricingEngine,
		logger:           logger,
	}
}

// Handle processes the order creation command. The road distance comes from
// the routing provider; when the provider is unavailable the great-circle
// distance serves as the fallback so order intake never depends on an
// external service being up.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	route := cmd.Route()
	distanceKm := h.measureDistance(ctx, route.Pickup(), route.Destination())

	breakdown, err := h.pricingEngine.Quote(distanceKm, cmd.Parcel(), time.Now())
	if err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		order.NewTrackingNumber(),
		route,
		cmd.Parcel(),
		distanceKm,
		breakdown.Total,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	orderID := newOrder.ID()
	note, err := notification.NewNotification(
		kernel.NewUUID(),
		newOrder.CustomerID(),
		&orderID,
		notification.KindOrderCreated,
		fmt.Sprintf("Order %s created. Total %s, estimated delivery in %d minutes.",
			newOrder.TrackingNumber(), breakdown.Total, breakdown.EtaMinutes),
	)
	if err != nil {
		return err
	}

	if err = uow.NotificationRepository().Add(ctx, note); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h CreateOrderCommandHandler) measureDistance(ctx context.Context, from, to kernel.GeoPoint) float64 {
	distanceKm, err := h.distanceProvider.RoadDistanceKm(ctx, from, to)
	if err == nil && distanceKm > 0 {
		return distanceKm
	}

	h.logger.Warn("routing provider unavailable, falling back to great-circle distance",
		slog.Any("error", err))
	return kernel.Haversine(from.Latitude(), from.Longitude(), to.Latitude(), to.Longitude())
}
