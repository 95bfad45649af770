package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"running-route-service/internal/domain"
	"running-route-service/internal/platform/obs"
	"running-route-service/internal/ports"
)

const (
	DefaultWorkers = 4
	MaxWorkers     = 8
)

type Options struct {
	// Workers bounds the number of outstanding provider calls per synthesis.
	Workers int
	// TrialTimeout bounds a single provider call. Zero disables it.
	TrialTimeout time.Duration
	// CallTimeout bounds a whole synthesis call. Zero disables it.
	CallTimeout time.Duration
	// EarlyExit stops dispatching trials once a candidate lands inside the
	// tolerance band. Off by default, every trial runs.
	EarlyExit bool
	// Random supplies per-trial randomness. Nil means unseeded.
	Random TrialRandom
}

// Synthesizer finds a walking route whose length is close to a target distance.
// A Synthesizer holds no per-call state and may be shared.
type Synthesizer struct {
	client *QueryClient
	opts   Options
}

func NewSynthesizer(provider ports.DirectionsProvider, opts Options) *Synthesizer {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Workers > MaxWorkers {
		opts.Workers = MaxWorkers
	}
	if opts.Random == nil {
		opts.Random = UnseededTrials()
	}

	return &Synthesizer{
		client: &QueryClient{Provider: provider, TrialTimeout: opts.TrialTimeout},
		opts:   opts,
	}
}

// SynthesizeRoute validates req, searches for the best route and converts its
// length back to the request's unit.
//
// Errors are a *domain.InputError, domain.ErrNoRouteFound, or the caller's
// context error when ctx is cancelled. A cancelled call never returns a result.
func (s *Synthesizer) SynthesizeRoute(ctx context.Context, req domain.SynthesisRequest) (_ *domain.SynthesisResult, err error) {
	defer obs.Time(ctx, "synth.SynthesizeRoute")(&err)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	caller := ctx
	if s.opts.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.CallTimeout)
		defer cancel()
	}

	targetKm := req.TargetKm()

	var res *domain.SynthesisResult
	switch req.Mode {
	case domain.ModeLoop:
		res, err = s.loop(ctx, req, targetKm)
	case domain.ModePointToPoint:
		res, err = s.pointToPoint(ctx, req, targetKm)
	default:
		return nil, &domain.InputError{Field: "mode", Msg: fmt.Sprintf("unknown mode %q", req.Mode)}
	}

	if cerr := caller.Err(); cerr != nil {
		return nil, fmt.Errorf("synthesize route: %w", cerr)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Synthesizer) loop(ctx context.Context, req domain.SynthesisRequest, targetKm float64) (*domain.SynthesisResult, error) {
	start := *req.Start
	ev := NewEvaluator(targetKm)

	s.search(ctx, NewLoopStrategy(start, targetKm), start, start, ev)

	best, ok := ev.Best()
	if !ok {
		attempted, _ := ev.Counts()
		return nil, fmt.Errorf("synthesize loop route: all %d trials failed: %w", attempted, domain.ErrNoRouteFound)
	}

	return s.result(req, best.Route, domain.OutcomeSearch, ev), nil
}

func (s *Synthesizer) pointToPoint(ctx context.Context, req domain.SynthesisRequest, targetKm float64) (*domain.SynthesisResult, error) {
	start, end := *req.Start, *req.End

	// The direct probe decides the branch, so it completes before any trial.
	direct, err := s.client.Query(ctx, start, end, nil)
	if err != nil {
		return nil, fmt.Errorf("synthesize point-to-point route: direct probe: %w: %w", domain.ErrNoRouteFound, err)
	}

	directKm := direct.TotalDistanceKm
	if directKm > targetKm*ToleranceHigh || withinTolerance(directKm, targetKm) {
		log.Printf("req_id=%s op=synth.shortcircuit direct_km=%.3f target_km=%.3f",
			obs.RequestID(ctx), directKm, targetKm)
		return s.result(req, direct, domain.OutcomeDirect, nil), nil
	}

	ev := NewEvaluator(targetKm)
	s.search(ctx, DetourStrategy{Start: start, End: end, DirectKm: directKm, TargetKm: targetKm}, start, end, ev)

	best, ok := ev.Best()
	if !ok {
		return s.result(req, direct, domain.OutcomeFallback, ev), nil
	}
	return s.result(req, best.Route, domain.OutcomeSearch, ev), nil
}

// search runs every trial of strategy through a bounded worker pool and feeds
// the outcomes to ev. Trial failures are logged and absorbed.
func (s *Synthesizer) search(
	ctx context.Context,
	strategy CandidateStrategy,
	origin domain.GeoPoint,
	destination domain.GeoPoint,
	ev *Evaluator,
) {
	n := strategy.Trials()
	sets := make([]domain.WaypointSet, n)
	for i := range sets {
		sets[i] = strategy.Generate(i, s.opts.Random(i))
	}

	ctx, stop := context.WithCancel(ctx)
	defer stop()

	reqID := obs.RequestID(ctx)

	var g errgroup.Group
	g.SetLimit(s.opts.Workers)

	for i, wps := range sets {
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			route, err := s.client.Query(ctx, origin, destination, wps)
			if err != nil && ctx.Err() != nil {
				// Cut off by early exit or the call deadline. Not a trial result.
				return nil
			}
			if err != nil {
				log.Printf("req_id=%s op=synth.trial trial=%d waypoints=%d err=%v", reqID, i, len(wps), err)
			}

			if ev.Observe(i, route, err) && s.opts.EarlyExit && withinTolerance(route.TotalDistanceKm, ev.targetKm) {
				stop()
			}
			return nil
		})
	}

	_ = g.Wait()
}

func (s *Synthesizer) result(
	req domain.SynthesisRequest,
	route *domain.RouteResult,
	outcome domain.Outcome,
	ev *Evaluator,
) *domain.SynthesisResult {
	res := &domain.SynthesisResult{
		EstimatedDistance: domain.Round2(req.Unit.FromKm(route.TotalDistanceKm)),
		Unit:              req.Unit,
		Route:             route,
		Outcome:           outcome,
	}
	if ev != nil {
		res.TrialsAttempted, res.TrialsFailed = ev.Counts()
	}
	return res
}
