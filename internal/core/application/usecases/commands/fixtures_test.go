package commands_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"swiftparcel/internal/core/domain/model/courier"
	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/core/domain/model/order"
	"swiftparcel/internal/core/domain/model/payment"
)

// Nairobi CBD, the pickup point every fixture order starts from.
const (
	pickupLat = -1.2833
	pickupLng = 36.8167
)

func mustGeoPoint(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return point
}

func mustPhone(t *testing.T, raw string) kernel.Phone {
	t.Helper()
	phone, err := kernel.NewPhone(raw)
	require.NoError(t, err)
	return phone
}

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	money, err := kernel.NewMoneyFromString(s)
	require.NoError(t, err)
	return money
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()

	route, err := order.NewRoute(
		mustGeoPoint(t, pickupLat, pickupLng), "Kimathi Street 12, Nairobi",
		mustGeoPoint(t, -1.3180, 36.9220), "Mombasa Road 45, Nairobi",
	)
	require.NoError(t, err)

	parcel, err := order.NewParcel(3.5, "documents", "30x20x5", false, false, false)
	require.NoError(t, err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		order.NewTrackingNumber(),
		route,
		parcel,
		12.4,
		mustMoney(t, "462.00"),
	)
	require.NoError(t, err)

	return aggregate
}

func newEligibleCourier(t *testing.T, name string, lat, lng float64) *courier.Courier {
	t.Helper()

	vehicle, err := courier.NewVehicle(courier.VehicleMotorbike, "KMC 123A", "DL-44821")
	require.NoError(t, err)

	rider, err := courier.NewCourier(
		kernel.NewUUID(), name, mustPhone(t, "0712345678"), "rider@swiftparcel.co.ke", vehicle,
	)
	require.NoError(t, err)

	rider.Verify()
	require.NoError(t, rider.ReportLocation(mustGeoPoint(t, lat, lng)))

	return rider
}

func newProcessingPayment(t *testing.T, orderID kernel.UUID, checkoutRequestID string) *payment.Payment {
	t.Helper()

	aggregate, err := payment.NewPayment(
		kernel.NewUUID(),
		orderID,
		mustMoney(t, "462.00"),
		mustPhone(t, "254712345678"),
		payment.MethodMpesa,
	)
	require.NoError(t, err)
	require.NoError(t, aggregate.MarkProcessing(checkoutRequestID, "29115-34620561-1"))

	return aggregate
}
