package courier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/pkg/errs"
)

func mustPhone(t *testing.T, raw string) kernel.Phone {
	t.Helper()
	phone, err := kernel.NewPhone(raw)
	require.NoError(t, err)
	return phone
}

func mustVehicle(t *testing.T) Vehicle {
	t.Helper()
	vehicle, err := NewVehicle(VehicleMotorbike, "KMDB 123A", "DL-445566")
	require.NoError(t, err)
	return vehicle
}

func newTestCourier(t *testing.T) *Courier {
	t.Helper()
	c, err := NewCourier(
		kernel.NewUUID(),
		"James Mwangi",
		mustPhone(t, "0712345678"),
		"james.mwangi@example.com",
		mustVehicle(t),
	)
	require.NoError(t, err)
	return c
}

func TestNewCourier(t *testing.T) {
	c := newTestCourier(t)

	require.NoError(t, c.Validate())
	assert.True(t, c.IsAvailable())
	assert.False(t, c.IsVerified())
	assert.Nil(t, c.Position())
	assert.Zero(t, c.TotalDeliveries())
	assert.Zero(t, c.Rating())
}

func TestNewCourierValidation(t *testing.T) {
	phone := mustPhone(t, "0712345678")
	vehicle := mustVehicle(t)

	tests := map[string]struct {
		name    string
		email   string
		wantErr error
	}{
		"empty name":     {name: "", email: "a@example.com", wantErr: errs.ErrValueIsRequired},
		"one char name":  {name: "J", email: "a@example.com", wantErr: errs.ErrValueIsInvalid},
		"empty email":    {name: "James Mwangi", email: "", wantErr: errs.ErrValueIsRequired},
		"invalid email":  {name: "James Mwangi", email: "not-an-email", wantErr: errs.ErrValueIsInvalid},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewCourier(kernel.NewUUID(), tc.name, phone, tc.email, vehicle)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	t.Run("zero phone", func(t *testing.T) {
		_, err := NewCourier(kernel.NewUUID(), "James Mwangi", kernel.Phone{}, "a@example.com", vehicle)
		assert.Error(t, err)
	})

	t.Run("unconstructed vehicle", func(t *testing.T) {
		_, err := NewCourier(kernel.NewUUID(), "James Mwangi", phone, "a@example.com", Vehicle{})
		assert.ErrorIs(t, err, ErrVehicleIsNotConstructed)
	})
}

func TestCourierEligibility(t *testing.T) {
	c := newTestCourier(t)
	assert.False(t, c.IsEligible(), "fresh courier is unverified and has no position")

	c.Verify()
	assert.False(t, c.IsEligible(), "no position yet")

	position, err := kernel.NewGeoPoint(-1.2864, 36.8172)
	require.NoError(t, err)
	require.NoError(t, c.ReportLocation(position))
	assert.True(t, c.IsEligible())

	require.NoError(t, c.MarkBusy())
	assert.False(t, c.IsEligible())

	c.MarkAvailable()
	assert.True(t, c.IsEligible())
}

func TestCourierMarkBusyRequiresVerification(t *testing.T) {
	c := newTestCourier(t)

	err := c.MarkBusy()
	assert.ErrorIs(t, err, ErrCourierNotVerified)
	assert.True(t, c.IsAvailable())
}

func TestCourierDistanceToKm(t *testing.T) {
	c := newTestCourier(t)
	pickup, err := kernel.NewGeoPoint(-1.2635, 36.8020)
	require.NoError(t, err)

	_, err = c.DistanceToKm(pickup)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	position, err := kernel.NewGeoPoint(-1.2864, 36.8172)
	require.NoError(t, err)
	require.NoError(t, c.ReportLocation(position))

	distance, err := c.DistanceToKm(pickup)
	require.NoError(t, err)
	assert.InDelta(t, 3.05, distance, 0.2)
}

func TestCourierCompleteDelivery(t *testing.T) {
	c := newTestCourier(t)
	c.Verify()

	position, err := kernel.NewGeoPoint(-1.2864, 36.8172)
	require.NoError(t, err)
	require.NoError(t, c.ReportLocation(position))
	require.NoError(t, c.MarkBusy())

	c.CompleteDelivery()

	assert.Equal(t, 1, c.TotalDeliveries())
	assert.True(t, c.IsAvailable())
}

func TestCourierAddRating(t *testing.T) {
	c := newTestCourier(t)

	require.NoError(t, c.AddRating(5))
	require.NoError(t, c.AddRating(4))
	assert.InDelta(t, 4.5, c.Rating(), 1e-9)

	err := c.AddRating(0.5)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	err = c.AddRating(5.5)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestRestoreCourier(t *testing.T) {
	position, err := kernel.NewGeoPoint(-1.2864, 36.8172)
	require.NoError(t, err)

	c, err := RestoreCourier(
		kernel.NewUUID(),
		"Grace Wanjiru",
		mustPhone(t, "0722000111"),
		"grace@example.com",
		mustVehicle(t),
		true,
		true,
		&position,
		42,
		190.5,
		40,
	)
	require.NoError(t, err)

	assert.True(t, c.IsEligible())
	assert.Equal(t, 42, c.TotalDeliveries())
	assert.InDelta(t, 4.7625, c.Rating(), 1e-9)
}

func TestRestoreCourierRejectsNegativeCounters(t *testing.T) {
	_, err := RestoreCourier(
		kernel.NewUUID(),
		"Grace Wanjiru",
		mustPhone(t, "0722000111"),
		"grace@example.com",
		mustVehicle(t),
		true, true, nil,
		-1, 0, 0,
	)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCourierValidateZeroValue(t *testing.T) {
	var c Courier
	assert.ErrorIs(t, c.Validate(), ErrCourierIsNotConstructed)

	var nilCourier *Courier
	assert.ErrorIs(t, nilCourier.Validate(), ErrCourierIsNotConstructed)
}
