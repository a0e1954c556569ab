package input

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRunStopsAfterTicks(t *testing.T) {
	var calls int
	var total float64
	err := Run(context.Background(), LoopConfig{Hz: 200, Ticks: 5}, func(dt float64) {
		calls++
		total += dt
		if dt <= 0 {
			t.Errorf("tick %d: dt = %v, want positive", calls, dt)
		}
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls != 5 {
		t.Errorf("step called %d times, want 5", calls)
	}
	if total <= 0 {
		t.Errorf("total elapsed = %v, want positive", total)
	}
}

func TestRunCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	err := Run(ctx, LoopConfig{Hz: 100}, func(float64) {})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run error = %v, want deadline exceeded", err)
	}
}
