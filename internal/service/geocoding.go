package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/courier/internal/geo"
	"github.com/UnknownOlympus/courier/internal/geocoding"
	"github.com/UnknownOlympus/courier/internal/metrics"
	"github.com/UnknownOlympus/courier/internal/models"
	"github.com/UnknownOlympus/courier/internal/repository"
)

// geocodeBatchSize is how many locations one polling round takes from the repository.
const geocodeBatchSize = 100

// ErrInvalidCoordinates is recorded for a location when the provider answers with coordinates out of range.
var ErrInvalidCoordinates = errors.New("provider returned invalid coordinates")

// GeocodingService periodically resolves coordinates for locations that have none yet.
type GeocodingService struct {
	log          *slog.Logger
	repo         repository.Interface
	provider     geocoding.Provider
	providerName string // label for request duration metrics
	metrics      *metrics.Metrics
	numWorkers   int
	pollInterval time.Duration
	nameSuffix   string // appended to names before geocoding, e.g. ", Netherlands"
}

// NewGeocodingService creates a new instance of GeocodingService.
func NewGeocodingService(
	log *slog.Logger,
	repo repository.Interface,
	provider geocoding.Provider,
	providerName string,
	metrics *metrics.Metrics,
	numWorkers int,
	pollInterval time.Duration,
	nameSuffix string,
) *GeocodingService {
	return &GeocodingService{
		log:          log,
		repo:         repo,
		provider:     provider,
		providerName: providerName,
		metrics:      metrics,
		numWorkers:   numWorkers,
		pollInterval: pollInterval,
		nameSuffix:   nameSuffix,
	}
}

// Run polls for locations to geocode every poll interval until ctx is cancelled.
func (gs *GeocodingService) Run(ctx context.Context) {
	ticker := time.NewTicker(gs.pollInterval)
	defer ticker.Stop()

	gs.log.InfoContext(ctx, "Geocoding service started...")

	for {
		select {
		case <-ctx.Done():
			gs.log.InfoContext(ctx, "Geocoding service stopped.")
			return
		case <-ticker.C:
			gs.log.InfoContext(ctx, "Polling for new locations to geocode...")
			gs.processBatch(ctx)
		}
	}
}

// processBatch fetches one batch of locations and geocodes them with a pool of workers.
func (gs *GeocodingService) processBatch(ctx context.Context) {
	tasks, err := gs.repo.FetchLocationsForGeocoding(ctx, geocodeBatchSize)
	if err != nil {
		gs.log.ErrorContext(ctx, "Failed to fetch locations", "error", err)
		return
	}
	if len(tasks) == 0 {
		gs.log.InfoContext(ctx, "No locations to process.")
		return
	}

	gs.log.InfoContext(ctx, "Found locations to process. Starting worker pool.",
		"jobs", len(tasks), "num_workers", gs.numWorkers)

	jobs := make(chan models.GeocodeTask, len(tasks))
	var wgr sync.WaitGroup

	for i := 1; i <= gs.numWorkers; i++ {
		wgr.Add(1)
		go gs.worker(ctx, i, &wgr, jobs)
	}

	for _, task := range tasks {
		jobs <- task
	}
	close(jobs)

	wgr.Wait()
	gs.log.InfoContext(ctx, "Processing batch finished")
}

func (gs *GeocodingService) worker(ctx context.Context, idx int, wg *sync.WaitGroup, jobs <-chan models.GeocodeTask) {
	defer wg.Done()
	for task := range jobs {
		gs.metrics.ActiveWorkers.Inc()
		gs.handle(ctx, idx, task)
		gs.metrics.ActiveWorkers.Dec()
	}
}

func (gs *GeocodingService) handle(ctx context.Context, idx int, task models.GeocodeTask) {
	gs.log.DebugContext(ctx, "Processing location", "worker", idx, "location", task.ID)

	startTime := time.Now()
	coords, err := gs.provider.Geocode(ctx, task.Name+gs.nameSuffix)
	gs.metrics.RequestSeconds.WithLabelValues(gs.providerName).Observe(time.Since(startTime).Seconds())

	if err == nil && !geo.Valid(*coords) {
		err = fmt.Errorf("%w: %v", ErrInvalidCoordinates, *coords)
	}

	if err != nil {
		gs.log.ErrorContext(ctx, "Failed to geocode", "worker", idx, "location", task.ID, "error", err)
		gs.metrics.TaskProcessed.WithLabelValues("failure").Inc()
		gs.metrics.APIErrors.Inc()

		if err = gs.repo.IncrementFailureCount(ctx, task.ID, err.Error()); err != nil {
			gs.log.ErrorContext(ctx, "Could not update failure count for location",
				"worker", idx, "location", task.ID, "error", err)
		}
		return
	}

	gs.metrics.TaskProcessed.WithLabelValues("success").Inc()

	if err = gs.repo.UpdateLocationCoordinates(ctx, task.ID, *coords); err != nil {
		gs.log.ErrorContext(ctx, "Failed to update coordinates for location",
			"worker", idx, "location", task.ID, "error", err)
		return
	}

	gs.log.DebugContext(ctx, "Worker successfully processed the location", "worker", idx, "location", task.ID)
}
