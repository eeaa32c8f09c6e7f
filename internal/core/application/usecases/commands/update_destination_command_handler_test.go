package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"swiftparcel/internal/core/application/usecases/commands"
	"swiftparcel/internal/core/domain/model/order"
	"swiftparcel/internal/core/domain/services"
)

func TestUpdateDestinationCommandHandler_RedirectsAndReprices(t *testing.T) {
	ctx := context.Background()

	pendingOrder := newPendingOrder(t)
	originalPrice := pendingOrder.TotalPrice()

	orderRepo := &MockOrderRepository{}
	orderRepo.On("GetForUpdate", ctx, pendingOrder.ID()).Return(pendingOrder, nil)
	orderRepo.On("Update", ctx, pendingOrder).Return(nil)

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
	distanceProvider.On("RoadDistanceKm", ctx, mock.Anything, mock.Anything).Return(34.8, nil)

	handler := commands.NewUpdateDestinationCommandHandler(
		factory, distanceProvider, services.NewPricingEngine(services.DefaultTariff()), discardLogger(),
	)

	cmd, err := commands.NewUpdateDestinationCommand(
		pendingOrder.ID(), -1.1622, 36.9570, "Thika Superhighway Exit 14",
	)
	require.NoError(t, err)

	require.NoError(t, handler.Handle(ctx, cmd))

	assert.InDelta(t, 34.8, pendingOrder.DistanceKm(), 0.001)
	assert.Equal(t, "Thika Superhighway Exit 14", pendingOrder.Route().DestinationAddress())
	assert.False(t, pendingOrder.TotalPrice().IsEqual(originalPrice))

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateDestinationCommandHandler_LockedAfterPickup(t *testing.T) {
	ctx := context.Background()

	rider := newEligibleCourier(t, "Brian Otieno", pickupLat, pickupLng)

	pickedUp := newPendingOrder(t)
	require.NoError(t, pickedUp.Assign(rider.ID()))
	require.NoError(t, pickedUp.MarkPickedUp())

	orderRepo := &MockOrderRepository{}
	orderRepo.On("GetForUpdate", ctx, pickedUp.ID()).Return(pickedUp, nil)

	uow := &MockUoW{}
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Rollback", ctx).Return(nil)

	factory := &MockOrderUoWFactory{}
	factory.On("Create").Return(uow)

	distanceProvider := &MockDistanceProvider{}

	handler := commands.NewUpdateDestinationCommandHandler(
		factory, distanceProvider, services.NewPricingEngine(services.DefaultTariff()), discardLogger(),
	)

	cmd, err := commands.NewUpdateDestinationCommand(
		pickedUp.ID(), -1.1622, 36.9570, "Thika Superhighway Exit 14",
	)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrDestinationLocked)

	distanceProvider.AssertNotCalled(t, "RoadDistanceKm", ctx, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}
