package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"running-route-service/internal/adapters/mock"
	"running-route-service/internal/domain"
)

func TestCallRegistrySupersedesSameKey(t *testing.T) {
	reg := NewCallRegistry()
	blocking := NewSynthesizer(mock.NewDirectionsProvider(mock.Blocking()), Options{Random: SeededTrials(1)})
	fast := NewSynthesizer(mock.NewDirectionsProvider(mock.FixedDistance(5)), Options{Random: SeededTrials(1)})

	type outcome struct {
		res *domain.SynthesisResult
		err error
	}
	first := make(chan outcome, 1)
	started := make(chan struct{})

	go func() {
		res, err := reg.Run(context.Background(), "client-1", func(ctx context.Context) (*domain.SynthesisResult, error) {
			close(started)
			return blocking.SynthesizeRoute(ctx, loopRequest(5, domain.UnitKilometers))
		})
		first <- outcome{res, err}
	}()

	<-started
	res, err := reg.Run(context.Background(), "client-1", func(ctx context.Context) (*domain.SynthesisResult, error) {
		return fast.SynthesizeRoute(ctx, loopRequest(5, domain.UnitKilometers))
	})
	if err != nil {
		t.Fatalf("second call: unexpected error: %v", err)
	}
	if res.EstimatedDistance != 5 {
		t.Fatalf("second call estimated = %v, want 5", res.EstimatedDistance)
	}

	select {
	case got := <-first:
		if !errors.Is(got.err, ErrSuperseded) {
			t.Fatalf("first call err = %v, want ErrSuperseded", got.err)
		}
		if got.res != nil {
			t.Fatalf("first call res = %+v, want nil", got.res)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("first call was not cancelled")
	}

	if reg.InFlight() != 0 {
		t.Fatalf("in flight = %d, want 0", reg.InFlight())
	}
}

func TestCallRegistryKeysAreIndependent(t *testing.T) {
	reg := NewCallRegistry()
	synth := NewSynthesizer(mock.NewDirectionsProvider(mock.FixedDistance(5)), Options{Random: SeededTrials(1)})

	for _, key := range []string{"", "a", "b"} {
		res, err := reg.Run(context.Background(), key, func(ctx context.Context) (*domain.SynthesisResult, error) {
			return synth.SynthesizeRoute(ctx, loopRequest(5, domain.UnitKilometers))
		})
		if err != nil || res == nil {
			t.Fatalf("key %q: res=%v err=%v", key, res, err)
		}
	}
}
