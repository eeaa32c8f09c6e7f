package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftparcel/internal/core/application/usecases/commands"
	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/pkg/errs"
)

func TestNewCreateOrderCommand_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		make func() error
	}{
		{
			name: "latitude out of range",
			make: func() error {
				_, err := commands.NewCreateOrderCommand(
					kernel.NewUUID(), kernel.NewUUID(),
					91.0, pickupLng, "Kimathi Street 12, Nairobi",
					destinationLat, destinationLng, "Mombasa Road 45, Nairobi",
					3.5, "documents", "30x20x5",
					false, false, false,
				)
				return err
			},
		},
		{
			name: "zero weight",
			make: func() error {
				_, err := commands.NewCreateOrderCommand(
					kernel.NewUUID(), kernel.NewUUID(),
					pickupLat, pickupLng, "Kimathi Street 12, Nairobi",
					destinationLat, destinationLng, "Mombasa Road 45, Nairobi",
					0, "documents", "30x20x5",
					false, false, false,
				)
				return err
			},
		},
		{
			name: "same pickup and destination",
			make: func() error {
				_, err := commands.NewCreateOrderCommand(
					kernel.NewUUID(), kernel.NewUUID(),
					pickupLat, pickupLng, "Kimathi Street 12, Nairobi",
					pickupLat, pickupLng, "Kimathi Street 12, Nairobi",
					3.5, "documents", "30x20x5",
					false, false, false,
				)
				return err
			},
		},
		{
			name: "blank address",
			make: func() error {
				_, err := commands.NewCreateOrderCommand(
					kernel.NewUUID(), kernel.NewUUID(),
					pickupLat, pickupLng, "",
					destinationLat, destinationLng, "Mombasa Road 45, Nairobi",
					3.5, "documents", "30x20x5",
					false, false, false,
				)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.make())
		})
	}
}

func TestCreateOrderCommand_ZeroValueFailsValidate(t *testing.T) {
	var cmd commands.CreateOrderCommand
	assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}

func TestNewReconcilePaymentCommand_RequiresCheckoutRequestID(t *testing.T) {
	_, err := commands.NewReconcilePaymentCommand("  ", 0, "THX7KP21MC", time.Now())
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
