package services

import (
	"math"
	"sync"

	"running-route-service/internal/domain"
)

// Evaluator tracks the best candidate seen during one synthesis call.
// It is safe for concurrent use.
type Evaluator struct {
	targetKm float64

	mu        sync.Mutex
	best      *domain.Candidate
	attempted int
	failed    int
}

func NewEvaluator(targetKm float64) *Evaluator {
	return &Evaluator{targetKm: targetKm}
}

// Observe records the outcome of one trial and reports whether it became the
// new best. Failed trials are counted but never replace or reset the best.
// A candidate replaces the best only with a strictly smaller diff; equal diffs
// go to the lower trial index, which is the earlier one under sequential dispatch.
func (e *Evaluator) Observe(trial int, route *domain.RouteResult, err error) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.attempted++
	if err != nil || route == nil {
		e.failed++
		return false
	}

	diff := math.Abs(route.TotalDistanceKm - e.targetKm)
	if e.best != nil {
		if diff > e.best.DiffKm || (diff == e.best.DiffKm && trial >= e.best.Trial) {
			return false
		}
	}

	e.best = &domain.Candidate{Trial: trial, Route: route, DiffKm: diff}
	return true
}

// Best returns the best candidate, or ok=false when every trial failed.
func (e *Evaluator) Best() (domain.Candidate, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.best == nil {
		return domain.Candidate{}, false
	}
	return *e.best, true
}

func (e *Evaluator) Counts() (attempted, failed int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.attempted, e.failed
}
