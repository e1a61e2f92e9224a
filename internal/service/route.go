package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/courier/internal/graph"
	"github.com/UnknownOlympus/courier/internal/metrics"
	"github.com/UnknownOlympus/courier/internal/pathfinder"
	"github.com/UnknownOlympus/courier/internal/source"
	"golang.org/x/sync/errgroup"
)

// Query asks for the shortest route between two locations.
type Query struct {
	From string
	To   string
}

// Answer is the outcome of one Query. Err is set when a location is unknown;
// an unreachable destination is reported through Result.Found instead.
type Answer struct {
	Query    Query
	Result   pathfinder.Result
	Segments []pathfinder.Segment
	Err      error
}

// RouteService loads a location set, builds the graph once and answers route queries over it.
type RouteService struct {
	log     *slog.Logger
	src     source.Source
	metrics *metrics.Metrics
	workers int
}

// NewRouteService creates a RouteService solving at most workers queries at a time.
func NewRouteService(log *slog.Logger, src source.Source, metrics *metrics.Metrics, workers int) *RouteService {
	return &RouteService{log: log, src: src, metrics: metrics, workers: max(workers, 1)}
}

// Graph loads the source and builds the route graph.
func (rs *RouteService) Graph(ctx context.Context) (*graph.Graph, error) {
	coords, conns, err := rs.src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load locations: %w", err)
	}

	g := graph.Build(coords, conns)
	stats := g.Stats()
	rs.metrics.GraphNodes.Set(float64(stats.Nodes))
	rs.metrics.GraphEdges.Set(float64(stats.Edges))
	rs.log.InfoContext(ctx, "Route graph built",
		"nodes", stats.Nodes,
		"edges", stats.Edges,
		"invalid_coordinates", stats.InvalidCoordinates,
		"unknown_endpoints", stats.UnknownEndpoints,
		"self_loops", stats.SelfLoops,
		"duplicates", stats.Duplicates,
	)

	return g, nil
}

// Plan answers every query against one freshly built graph. Queries run
// concurrently and answers keep the order of queries. The returned error is
// only set when the graph cannot be built or ctx is cancelled.
func (rs *RouteService) Plan(ctx context.Context, queries []Query) ([]Answer, error) {
	g, err := rs.Graph(ctx)
	if err != nil {
		return nil, err
	}

	answers := make([]Answer, len(queries))
	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(rs.workers)

	for i, q := range queries {
		grp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			answers[i] = rs.solve(gctx, g, q)
			return nil
		})
	}

	if err = grp.Wait(); err != nil {
		return nil, fmt.Errorf("route planning interrupted: %w", err)
	}

	return answers, nil
}

func (rs *RouteService) solve(ctx context.Context, g *graph.Graph, q Query) Answer {
	answer := Answer{Query: q}

	start := time.Now()
	res, err := pathfinder.ShortestPath(g, q.From, q.To)
	rs.metrics.SolveSeconds.Observe(time.Since(start).Seconds())
	answer.Result = res

	switch {
	case err != nil:
		answer.Err = err
		rs.metrics.RouteQueries.WithLabelValues("error").Inc()
		var nf *pathfinder.NodeNotFoundError
		if errors.As(err, &nf) {
			rs.log.WarnContext(ctx, "Location not found", "role", nf.Role, "location", nf.Name)
		}
	case !res.Found:
		rs.metrics.RouteQueries.WithLabelValues("not_found").Inc()
		rs.log.InfoContext(ctx, "No route between locations", "from", q.From, "to", q.To)
	default:
		rs.metrics.RouteQueries.WithLabelValues("found").Inc()
		answer.Segments, answer.Err = pathfinder.Segments(g, res.Path)
		rs.log.DebugContext(ctx, "Route found", "from", q.From, "to", q.To, "km", res.Weight, "stops", len(res.Path)-1)
	}

	return answer
}
