package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestCalculateBackoff(t *testing.T) {
	base := 15 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 15 * time.Second},
		{"negative failures", -1, 15 * time.Second},
		{"one failure", 1, 30 * time.Second},
		{"two failures", 2, time.Minute},
		{"three failures", 3, 2 * time.Minute},
		{"four failures", 4, 4 * time.Minute},
		{"five failures capped", 5, 5 * time.Minute}, // 8m, capped
		{"many failures capped", 40, 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, base)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, base, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	base := 2 * time.Second
	for failures := 0; failures <= 64; failures++ {
		got := calculateBackoff(failures, base)
		if got > maxBackoff || got <= 0 {
			t.Errorf("calculateBackoff(%d, %v) = %v, outside (0, %v]", failures, base, got, maxBackoff)
		}
	}
}

type fakeSource struct {
	mu       sync.Mutex
	calls    int
	inFlight atomic.Int64
	err      error
	called   chan struct{}
}

func newFakeSource() *fakeSource {
	return &fakeSource{called: make(chan struct{}, 64)}
}

func (f *fakeSource) RefreshLists(context.Context) error {
	f.mu.Lock()
	f.calls++
	err := f.err
	f.mu.Unlock()
	f.called <- struct{}{}
	return err
}

func (f *fakeSource) InFlight() int64 { return f.inFlight.Load() }

func (f *fakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestStartRefresher_RefreshesOnInterval(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := newFakeSource()
	done := StartRefresher(ctx, src, 5*time.Millisecond, nil)

	for i := 0; i < 3; i++ {
		select {
		case <-src.called:
		case <-time.After(2 * time.Second):
			t.Fatalf("refresh %d never happened", i+1)
		}
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("refresher did not stop after cancel")
	}
}

func TestStartRefresher_SkipsWhileMutationsInFlight(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	src := newFakeSource()
	src.inFlight.Store(1)
	StartRefresher(ctx, src, 2*time.Millisecond, nil)

	time.Sleep(30 * time.Millisecond)
	if got := src.Calls(); got != 0 {
		t.Fatalf("RefreshLists called %d times while a mutation was in flight", got)
	}

	src.inFlight.Store(0)
	select {
	case <-src.called:
	case <-time.After(2 * time.Second):
		t.Fatal("refresh did not resume once mutations settled")
	}
}

func TestStartRefresher_KeepsRunningAfterFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	src := newFakeSource()
	src.err = errors.New("boom")
	StartRefresher(ctx, src, time.Millisecond, nil)

	// Backoff after one failure is 2ms, after two 4ms.
	for i := 0; i < 3; i++ {
		select {
		case <-src.called:
		case <-time.After(2 * time.Second):
			t.Fatalf("refresh %d never happened after failures", i+1)
		}
	}
}
