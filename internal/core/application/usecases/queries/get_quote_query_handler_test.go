package queries_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"swiftparcel/internal/core/application/usecases/queries"
	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/core/domain/services"
)

type MockDistanceProvider struct{ mock.Mock }

func (m *MockDistanceProvider) RoadDistanceKm(ctx context.Context, from, to kernel.GeoPoint) (float64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(float64), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newQuoteQuery(t *testing.T, express bool) queries.GetQuoteQuery {
	t.Helper()

	query, err := queries.NewGetQuoteQuery(
		-1.2833, 36.8167,
		-1.3180, 36.9220,
		8.0, "electronics", "40x30x20",
		false, false, express,
	)
	require.NoError(t, err)

	return query
}

func TestGetQuoteQueryHandler_UsesRoadDistance(t *testing.T) {
	ctx := context.Background()

	distanceProvider := &MockDistanceProvider{}
	distanceProvider.On("RoadDistanceKm", ctx, mock.Anything, mock.Anything).Return(10.0, nil)

	handler := queries.NewGetQuoteQueryHandler(
		distanceProvider, services.NewPricingEngine(services.DefaultTariff()), discardLogger(),
	)

	response, err := handler.Handle(ctx, newQuoteQuery(t, false))
	require.NoError(t, err)

	assert.InDelta(t, 10.0, response.DistanceKm, 0.001)
	assert.False(t, response.Breakdown.Total.IsZero())
	assert.GreaterOrEqual(t, response.EtaMinutes, 30)

	distanceProvider.AssertExpectations(t)
}

func TestGetQuoteQueryHandler_FallsBackToGreatCircle(t *testing.T) {
	ctx := context.Background()

	distanceProvider := &MockDistanceProvider{}
	distanceProvider.On("RoadDistanceKm", ctx, mock.Anything, mock.Anything).
		Return(0.0, errors.New("routing service unavailable"))

	handler := queries.NewGetQuoteQueryHandler(
		distanceProvider, services.NewPricingEngine(services.DefaultTariff()), discardLogger(),
	)

	response, err := handler.Handle(ctx, newQuoteQuery(t, false))
	require.NoError(t, err)

	expected := kernel.Haversine(-1.2833, 36.8167, -1.3180, 36.9220)
	assert.InDelta(t, expected, response.DistanceKm, 0.001)
}

func TestGetQuoteQueryHandler_ExpressShortensEta(t *testing.T) {
	ctx := context.Background()

	distanceProvider := &MockDistanceProvider{}
	distanceProvider.On("RoadDistanceKm", ctx, mock.Anything, mock.Anything).Return(40.0, nil)

	handler := queries.NewGetQuoteQueryHandler(
		distanceProvider, services.NewPricingEngine(services.DefaultTariff()), discardLogger(),
	)

	standard, err := handler.Handle(ctx, newQuoteQuery(t, false))
	require.NoError(t, err)

	express, err := handler.Handle(ctx, newQuoteQuery(t, true))
	require.NoError(t, err)

	assert.Less(t, express.EtaMinutes, standard.EtaMinutes)
	assert.True(t, standard.Breakdown.Total.Amount().LessThan(express.Breakdown.Total.Amount()))
}

func TestGetQuoteQueryHandler_InvalidQuery(t *testing.T) {
	handler := queries.NewGetQuoteQueryHandler(
		&MockDistanceProvider{}, services.NewPricingEngine(services.DefaultTariff()), discardLogger(),
	)

	_, err := handler.Handle(context.Background(), queries.GetQuoteQuery{})
	require.ErrorIs(t, err, queries.ErrGetQuoteQueryIsNotConstructed)
}
