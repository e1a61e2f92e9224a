package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/UnknownOlympus/courier/internal/config"
	"github.com/UnknownOlympus/courier/internal/logger"
	"github.com/UnknownOlympus/courier/internal/metrics"
	"github.com/UnknownOlympus/courier/internal/pathfinder"
	"github.com/UnknownOlympus/courier/internal/repository"
	"github.com/UnknownOlympus/courier/internal/service"
	"github.com/UnknownOlympus/courier/internal/source"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
)

const (
	defaultFrom = "Chicago"
	defaultTo   = "Amsterdam"
)

// main answers route queries from the command line:
//
//	courier --from Chicago --to Amsterdam
//	courier --route Chicago:Amsterdam --route London:Tokyo --source postgres
func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code: 0 when every query was answered,
// 1 when a query or the source failed, 2 on invalid arguments.
func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	v := config.New()
	flags := pflag.NewFlagSet("courier", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.String("from", defaultFrom, "start location")
	flags.String("to", defaultTo, "destination location")
	flags.StringArray("route", nil, "route query as FROM:TO, may be repeated (overrides --from/--to)")
	flags.String("source", config.SourceHTML, "location source: html or postgres")
	flags.String("coordinates-file", "city-coordinates.html", "HTML table with name, latitude, longitude")
	flags.String("connections-file", "from-to.html", "HTML table with from, to")
	flags.String("config", "", "optional configuration file")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	for key, flag := range map[string]string{
		"source":           "source",
		"coordinates_file": "coordinates-file",
		"connections_file": "connections-file",
		"config":           "config",
	} {
		if flags.Changed(flag) {
			_ = v.BindPFlag(key, flags.Lookup(flag))
		}
	}

	cfg := config.MustLoadFrom(v)
	appLog := logger.Setup(cfg.Env, stderr)

	queries, err := parseQueries(flags)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid route query: %v\n", err)
		return 2
	}

	src, closeSrc, err := newSource(ctx, cfg, appLog)
	if err != nil {
		appLog.Error("Failed to set up location source", "error", err)
		return 1
	}
	defer closeSrc()

	// A one-shot run is never scraped, the collectors only back the service's bookkeeping.
	routes := service.NewRouteService(appLog, src, metrics.NewMetrics(prometheus.NewRegistry()), cfg.Workers)
	answers, err := routes.Plan(ctx, queries)
	if err != nil {
		appLog.Error("Failed to plan routes", "error", err)
		return 1
	}

	code := 0
	for _, answer := range answers {
		if !report(stdout, answer) {
			code = 1
		}
	}

	return code
}

func parseQueries(flags *pflag.FlagSet) ([]service.Query, error) {
	routes, _ := flags.GetStringArray("route")
	if len(routes) == 0 {
		from, _ := flags.GetString("from")
		to, _ := flags.GetString("to")
		return []service.Query{{From: from, To: to}}, nil
	}

	queries := make([]service.Query, 0, len(routes))
	for _, r := range routes {
		from, to, ok := strings.Cut(r, ":")
		if !ok || strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
			return nil, fmt.Errorf("%q is not of the form FROM:TO", r)
		}
		queries = append(queries, service.Query{From: strings.TrimSpace(from), To: strings.TrimSpace(to)})
	}

	return queries, nil
}

func newSource(ctx context.Context, cfg *config.Config, log *slog.Logger) (source.Source, func(), error) {
	if cfg.Source == config.SourcePostgres {
		dtb, err := repository.NewDatabase(ctx,
			cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
		)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewRepository(dtb, log)
		return source.NewRepositorySource(repo, log), dtb.Close, nil
	}

	return source.NewHTMLSource(cfg.CoordinatesFile, cfg.ConnectionsFile, log), func() {}, nil
}

// report prints one answer and reports whether it was answered without error.
func report(out io.Writer, answer service.Answer) bool {
	q := answer.Query
	fmt.Fprintf(out, "Shortest path from %s to %s\n", q.From, q.To)

	var nf *pathfinder.NodeNotFoundError
	switch {
	case errors.As(answer.Err, &nf):
		fmt.Fprintf(out, "Error: %s not found in coordinates\n\n", nf.Name)
		return false
	case answer.Err != nil:
		fmt.Fprintf(out, "Error: %v\n\n", answer.Err)
		return false
	case !answer.Result.Found:
		fmt.Fprintf(out, "No path found between %s and %s\n\n", q.From, q.To)
		return true
	}

	res := answer.Result
	fmt.Fprintf(out, "Total distance: %.2f km\n", res.Weight)
	fmt.Fprintf(out, "Number of stops: %d\n", len(res.Path)-1)
	for i, s := range answer.Segments {
		fmt.Fprintf(out, "  %d. %s → %s: %.2f km\n", i+1, s.From, s.To, s.Distance)
	}
	fmt.Fprintf(out, "Final Answer: %s\n\n", res)

	return true
}
