package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"swiftparcel/internal/core/application/usecases/commands"
	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/core/domain/model/notification"
	"swiftparcel/internal/core/domain/model/order"
	"swiftparcel/internal/core/domain/services"
)

const (
	destinationLat = -1.3180
	destinationLng = 36.9220
)

func newCreateOrderCommand(t *testing.T) commands.CreateOrderCommand {
	t.Helper()

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), kernel.NewUUID(),
		pickupLat, pickupLng, "Kimathi Street 12, Nairobi",
		destinationLat, destinationLng, "Mombasa Road 45, Nairobi",
		3.5, "documents", "30x20x5",
		false, false, false,
	)
	require.NoError(t, err)

	return cmd
}

func TestCreateOrderCommandHandler_UsesRoadDistance(t *testing.T) {
	ctx := context.Background()

	var created *order.Order

	orderRepo := &MockOrderRepository{}
	orderRepo.On("Add", ctx, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*order.Order)
	}).Return(nil)

	notificationRepo := &MockNotificationRepository{}
	notificationRepo.On("Add", ctx, notificationOfKind(notification.KindOrderCreated)).Return(nil)

	uow := &MockUoW{}
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("NotificationRepository").Return(notificationRepo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	factory := &MockOrderUoWFactory{}
	factory.On("Create").Return(uow)

	distanceProvider := &MockDistanceProvider{}
	distanceProvider.On("RoadDistanceKm", ctx, mock.Anything, mock.Anything).Return(12.5, nil)

	handler := commands.NewCreateOrderCommandHandler(
		factory, distanceProvider, services.NewPricingEngine(services.DefaultTariff()), discardLogger(),
	)

	require.NoError(t, handler.Handle(ctx, newCreateOrderCommand(t)))

	require.NotNil(t, created)
	assert.InDelta(t, 12.5, created.DistanceKm(), 0.001)
	assert.Equal(t, order.Pending, created.Status())
	assert.Nil(t, created.Courier())
	assert.False(t, created.TotalPrice().IsZero())
	assert.Contains(t, created.TrackingNumber(), "TRK-")

	orderRepo.AssertExpectations(t)
	notificationRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_FallsBackToGreatCircle(t *testing.T) {
	ctx := context.Background()

	var created *order.Order

	orderRepo := &MockOrderRepository{}
	orderRepo.On("Add", ctx, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*order.Order)
	}).Return(nil)

	notificationRepo := &MockNotificationRepository{}
	notificationRepo.On("Add", ctx, mock.Anything).Return(nil)

	uow := &MockUoW{}
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("NotificationRepository").Return(notificationRepo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	factory := &MockOrderUoWFactory{}
	factory.On("Create").Return(uow)

	distanceProvider := &MockDistanceProvider{}
	distanceProvider.On("RoadDistanceKm", ctx, mock.Anything, mock.Anything).
		Return(0.0, errors.New("routing service unavailable"))

	handler := commands.NewCreateOrderCommandHandler(
		factory, distanceProvider, services.NewPricingEngine(services.DefaultTariff()), discardLogger(),
	)

	require.NoError(t, handler.Handle(ctx, newCreateOrderCommand(t)))

	require.NotNil(t, created)
	expected := kernel.Haversine(pickupLat, pickupLng, destinationLat, destinationLng)
	assert.InDelta(t, expected, created.DistanceKm(), 0.001)
}

func TestCreateOrderCommandHandler_OrderRepositoryErrorAbortsTransaction(t *testing.T) {
	ctx := context.Background()

	repoErr := errors.New("insert failed")

	orderRepo := &MockOrderRepository{}
	orderRepo.On("Add", ctx, mock.Anything).Return(repoErr)

	uow := &MockUoW{}
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Rollback", ctx).Return(nil)

	factory := &MockOrderUoWFactory{}
	factory.On("Create").Return(uow)

	distanceProvider := &MockDistanceProvider{}
	distanceProvider.On("RoadDistanceKm", ctx, mock.Anything, mock.Anything).Return(12.5, nil)

	handler := commands.NewCreateOrderCommandHandler(
		factory, distanceProvider, services.NewPricingEngine(services.DefaultTariff()), discardLogger(),
	)

	err := handler.Handle(ctx, newCreateOrderCommand(t))
	require.ErrorIs(t, err, repoErr)

	uow.AssertNotCalled(t, "Commit", ctx)
	uow.AssertCalled(t, "Rollback", ctx)
}
