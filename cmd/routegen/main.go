// routegen synthesizes one route from the command line and prints it as
// JSON, GeoJSON, GPX or KML.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/kr/pretty"

	"running-route-service/internal/api/dto"
	"running-route-service/internal/app"
	"running-route-service/internal/config"
	"running-route-service/internal/domain"
	"running-route-service/internal/services"
)

func main() {
	var (
		mode       = flag.String("mode", "loop", "loop or point-to-point")
		start      = flag.String("start", "", "start point as lat,lng")
		end        = flag.String("end", "", "end point as lat,lng (point-to-point only)")
		startQuery = flag.String("start-query", "", "free-text start place, used when -start is empty")
		endQuery   = flag.String("end-query", "", "free-text end place, used when -end is empty")
		distance   = flag.Float64("distance", 5, "target distance")
		unit       = flag.String("unit", "km", "km or mi")
		format     = flag.String("format", "json", "json, geojson, gpx or kml")
		seed       = flag.Uint64("seed", 0, "seed for reproducible waypoints; 0 is unseeded")
		debug      = flag.Bool("debug", false, "dump the full result to stderr")
	)
	flag.Parse()

	if err := run(options{
		mode: *mode, start: *start, end: *end,
		startQuery: *startQuery, endQuery: *endQuery,
		distance: *distance, unit: *unit, format: *format,
		seed: *seed, debug: *debug,
	}); err != nil {
		log.Fatal(err)
	}
}

type options struct {
	mode, start, end     string
	startQuery, endQuery string
	distance             float64
	unit, format         string
	seed                 uint64
	debug                bool
}

func run(o options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var random services.TrialRandom
	if o.seed != 0 {
		random = services.SeededTrials(o.seed)
	}

	a, err := app.Build(ctx, cfg, random)
	if err != nil {
		return err
	}
	defer a.Close()

	f := strings.ToLower(o.format)
	if _, ok := a.Renderers[f]; !ok && f != "" && f != "json" {
		return fmt.Errorf("unknown format %q", o.format)
	}

	u, err := domain.ParseDistanceUnit(o.unit)
	if err != nil {
		return err
	}
	m, err := domain.ParseRouteMode(o.mode)
	if err != nil {
		return err
	}

	endpoints := services.Endpoints{StartQuery: o.startQuery, EndQuery: o.endQuery}
	if endpoints.Start, err = parsePoint("start", o.start); err != nil {
		return err
	}
	if endpoints.End, err = parsePoint("end", o.end); err != nil {
		return err
	}

	startPt, endPt, err := services.ResolveEndpoints(ctx, a.Places, endpoints)
	if err != nil {
		return err
	}

	res, err := a.Synth.SynthesizeRoute(ctx, domain.SynthesisRequest{
		Start:          startPt,
		End:            endPt,
		TargetDistance: o.distance,
		Unit:           u,
		Mode:           m,
	})
	if err != nil {
		return err
	}

	if o.debug {
		fmt.Fprintf(os.Stderr, "%# v\n", pretty.Formatter(res))
	}

	if r, ok := a.Renderers[f]; ok {
		return r.Render(os.Stdout, res)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(dto.NewRouteResponse(res))
}

func parsePoint(field, s string) (*domain.GeoPoint, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	p, err := domain.ParseGeoPoint(s)
	if err != nil {
		return nil, fmt.Errorf("-%s: %w", field, err)
	}
	return &p, nil
}
