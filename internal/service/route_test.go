package service_test

import (
	"context"
	"log/slog"
	"math"
	"testing"

	"github.com/UnknownOlympus/courier/internal/metrics"
	"github.com/UnknownOlympus/courier/internal/models"
	"github.com/UnknownOlympus/courier/internal/pathfinder"
	"github.com/UnknownOlympus/courier/internal/service"
	"github.com/UnknownOlympus/courier/test/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var cities = map[string]models.Coordinates{
	"Chicago":   {Latitude: 41.8781, Longitude: -87.6298},
	"New York":  {Latitude: 40.7128, Longitude: -74.0060},
	"London":    {Latitude: 51.5074, Longitude: -0.1278},
	"Amsterdam": {Latitude: 52.3676, Longitude: 4.9041},
	"Sydney":    {Latitude: -33.8688, Longitude: 151.2093},
}

var flights = []models.Connection{
	{From: "Chicago", To: "New York"},
	{From: "New York", To: "London"},
	{From: "London", To: "Amsterdam"},
	{From: "Chicago", To: "Amsterdam"},
	{From: "Chicago", To: "Paris"},
}

func TestRouteService_Plan(t *testing.T) {
	ctx := t.Context()

	t.Run("success - mixed outcomes keep query order", func(t *testing.T) {
		src := mocks.NewSource(t)
		src.On("Load", mock.Anything).Return(cities, flights, nil).Once()
		appMetrics := metrics.NewMetrics(prometheus.NewRegistry())
		rs := service.NewRouteService(slog.Default(), src, appMetrics, 3)

		answers, err := rs.Plan(ctx, []service.Query{
			{From: "New York", To: "Amsterdam"},
			{From: "Chicago", To: "Sydney"},
			{From: "Paris", To: "London"},
			{From: "London", To: "London"},
		})

		require.NoError(t, err)
		require.Len(t, answers, 4)

		assert.NoError(t, answers[0].Err)
		assert.True(t, answers[0].Result.Found)
		assert.Equal(t, []string{"New York", "London", "Amsterdam"}, answers[0].Result.Path)
		require.Len(t, answers[0].Segments, 2)
		assert.InDelta(t, answers[0].Result.Weight, answers[0].Segments[0].Distance+answers[0].Segments[1].Distance, 1e-9)

		assert.NoError(t, answers[1].Err)
		assert.False(t, answers[1].Result.Found)
		assert.True(t, math.IsInf(answers[1].Result.Weight, 1))

		require.ErrorIs(t, answers[2].Err, pathfinder.ErrNodeNotFound)

		assert.Equal(t, []string{"London"}, answers[3].Result.Path)
		assert.Empty(t, answers[3].Segments)

		assert.InDelta(t, 2, testutil.ToFloat64(appMetrics.RouteQueries.WithLabelValues("found")), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.RouteQueries.WithLabelValues("not_found")), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.RouteQueries.WithLabelValues("error")), 0)
		assert.InDelta(t, 5, testutil.ToFloat64(appMetrics.GraphNodes), 0)
		assert.InDelta(t, 4, testutil.ToFloat64(appMetrics.GraphEdges), 0)
	})

	t.Run("success - direct flight beats detour", func(t *testing.T) {
		src := mocks.NewSource(t)
		src.On("Load", mock.Anything).Return(cities, flights, nil).Once()
		rs := service.NewRouteService(slog.Default(), src, metrics.NewMetrics(prometheus.NewRegistry()), 1)

		answers, err := rs.Plan(ctx, []service.Query{{From: "Chicago", To: "Amsterdam"}})

		require.NoError(t, err)
		assert.Equal(t, "Chicago,Amsterdam", answers[0].Result.String())
	})

	t.Run("error - source fails", func(t *testing.T) {
		src := mocks.NewSource(t)
		src.On("Load", mock.Anything).Return(nil, nil, assert.AnError).Once()
		rs := service.NewRouteService(slog.Default(), src, metrics.NewMetrics(prometheus.NewRegistry()), 2)

		answers, err := rs.Plan(ctx, []service.Query{{From: "Chicago", To: "London"}})

		require.ErrorIs(t, err, assert.AnError)
		assert.Nil(t, answers)
	})

	t.Run("error - cancelled context", func(t *testing.T) {
		src := mocks.NewSource(t)
		src.On("Load", mock.Anything).Return(cities, flights, nil).Once()
		rs := service.NewRouteService(slog.Default(), src, metrics.NewMetrics(prometheus.NewRegistry()), 2)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := rs.Plan(cctx, []service.Query{{From: "Chicago", To: "London"}})

		require.ErrorIs(t, err, context.Canceled)
	})
}
