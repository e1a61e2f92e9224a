package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/UnknownOlympus/courier/internal/metrics"
	"github.com/UnknownOlympus/courier/internal/models"
	"github.com/UnknownOlympus/courier/test/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProcessBatch(t *testing.T) {
	mockRepo := mocks.NewInterface(t)
	mockProvider := mocks.NewProvider(t)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	appMetrics := metrics.NewMetrics(prometheus.NewRegistry())
	ctx := t.Context()
	service := NewGeocodingService(logger, mockRepo, mockProvider, "nominatim", appMetrics, 2, time.Second, ", USA")

	t.Run("successful processing", func(t *testing.T) {
		tasks := []models.GeocodeTask{{ID: 1, Name: "Chicago"}}
		coords := &models.Coordinates{Latitude: 41.8781, Longitude: -87.6298}

		mockRepo.On("FetchLocationsForGeocoding", ctx, geocodeBatchSize).Return(tasks, nil).Once()
		mockProvider.On("Geocode", ctx, "Chicago, USA").Return(coords, nil).Once()
		mockRepo.On("UpdateLocationCoordinates", ctx, 1, *coords).Return(nil).Once()

		service.processBatch(ctx)

		mockRepo.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
		assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.TaskProcessed.WithLabelValues("success")), 0)
	})

	t.Run("fetch locations returns error", func(t *testing.T) {
		mockRepo.On("FetchLocationsForGeocoding", ctx, geocodeBatchSize).Return(nil, assert.AnError).Once()

		service.processBatch(ctx)

		mockRepo.AssertExpectations(t)
	})

	t.Run("fetch locations returns empty list", func(t *testing.T) {
		mockRepo.On("FetchLocationsForGeocoding", ctx, geocodeBatchSize).Return([]models.GeocodeTask{}, nil).Once()

		service.processBatch(ctx)

		mockRepo.AssertExpectations(t)
	})

	t.Run("geocoding provider returns error", func(t *testing.T) {
		tasks := []models.GeocodeTask{{ID: 2, Name: "Atlantis"}}
		geocodeErr := errors.New("geocoding failed")

		mockRepo.On("FetchLocationsForGeocoding", ctx, geocodeBatchSize).Return(tasks, nil).Once()
		mockProvider.On("Geocode", ctx, "Atlantis, USA").Return(nil, geocodeErr).Once()
		mockRepo.On("IncrementFailureCount", ctx, 2, geocodeErr.Error()).Return(nil).Once()

		service.processBatch(ctx)

		mockRepo.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
	})

	t.Run("provider returns coordinates out of range", func(t *testing.T) {
		tasks := []models.GeocodeTask{{ID: 3, Name: "Nowhere"}}
		coords := &models.Coordinates{Latitude: 123, Longitude: 0}

		mockRepo.On("FetchLocationsForGeocoding", ctx, geocodeBatchSize).Return(tasks, nil).Once()
		mockProvider.On("Geocode", ctx, "Nowhere, USA").Return(coords, nil).Once()
		mockRepo.On("IncrementFailureCount", ctx, 3, mock.MatchedBy(func(msg string) bool {
			return strings.Contains(msg, ErrInvalidCoordinates.Error())
		})).Return(nil).Once()

		service.processBatch(ctx)

		mockRepo.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
	})

	t.Run("error to increment failure count", func(t *testing.T) {
		tasks := []models.GeocodeTask{{ID: 2, Name: "Atlantis"}}
		geocodeErr := errors.New("geocoding failed")

		mockRepo.On("FetchLocationsForGeocoding", ctx, geocodeBatchSize).Return(tasks, nil).Once()
		mockProvider.On("Geocode", ctx, "Atlantis, USA").Return(nil, geocodeErr).Once()
		mockRepo.On("IncrementFailureCount", ctx, 2, geocodeErr.Error()).Return(assert.AnError).Once()

		service.processBatch(ctx)

		mockRepo.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
	})

	t.Run("error to update location coordinates", func(t *testing.T) {
		tasks := []models.GeocodeTask{{ID: 1, Name: "Chicago"}}
		coords := &models.Coordinates{Latitude: 41.8781, Longitude: -87.6298}

		mockRepo.On("FetchLocationsForGeocoding", ctx, geocodeBatchSize).Return(tasks, nil).Once()
		mockProvider.On("Geocode", ctx, "Chicago, USA").Return(coords, nil).Once()
		mockRepo.On("UpdateLocationCoordinates", ctx, 1, *coords).Return(assert.AnError).Once()

		service.processBatch(ctx)

		mockRepo.AssertExpectations(t)
		mockProvider.AssertExpectations(t)
		assert.Zero(t, testutil.ToFloat64(appMetrics.ActiveWorkers))
	})

	t.Run("run stops when context is cancelled", func(t *testing.T) {
		tctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
		defer cancel()

		service.Run(tctx)
	})
}

func TestHandleRejectsInvalidCoordinates(t *testing.T) {
	mockRepo := mocks.NewInterface(t)
	mockProvider := mocks.NewProvider(t)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	appMetrics := metrics.NewMetrics(prometheus.NewRegistry())
	ctx := t.Context()
	service := NewGeocodingService(logger, mockRepo, mockProvider, "visicom", appMetrics, 1, time.Second, "")

	mockRepo.On("FetchLocationsForGeocoding", ctx, geocodeBatchSize).
		Return([]models.GeocodeTask{{ID: 7, Name: "Null Island"}}, nil).Once()
	mockProvider.On("Geocode", ctx, "Null Island").
		Return(&models.Coordinates{Latitude: 10, Longitude: 181}, nil).Once()

	var recorded string
	mockRepo.On("IncrementFailureCount", ctx, 7, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { recorded = args.String(2) }).
		Return(nil).Once()

	service.processBatch(ctx)

	assert.Contains(t, recorded, ErrInvalidCoordinates.Error())
	assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.TaskProcessed.WithLabelValues("failure")), 0)
	mockRepo.AssertNotCalled(t, "UpdateLocationCoordinates", mock.Anything, mock.Anything, mock.Anything)
}
