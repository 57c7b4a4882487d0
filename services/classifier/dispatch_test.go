package classifier

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"
)

func TestMapOrderedPreservesInputOrder(t *testing.T) {
	inputs := make([]int, 100)
	for i := range inputs {
		inputs[i] = i
	}

	// Random per-element delays force completions to interleave across
	// workers.
	results := mapOrdered(context.Background(), 4, inputs, func(ctx context.Context, n int) string {
		time.Sleep(time.Duration(rand.Intn(3)) * time.Millisecond)
		return fmt.Sprintf("result-%d", n)
	})

	if len(results) != len(inputs) {
		t.Fatalf("expected %d results, got %d", len(inputs), len(results))
	}

	for i, result := range results {
		expected := fmt.Sprintf("result-%d", i)
		if result != expected {
			t.Errorf("result[%d] = %q, expected %q", i, result, expected)
		}
	}
}

func TestMapOrderedBoundsConcurrency(t *testing.T) {
	const workers = 4

	var inFlight, peak atomic.Int64

	inputs := make([]int, 40)
	mapOrdered(context.Background(), workers, inputs, func(ctx context.Context, _ int) int {
		current := inFlight.Add(1)
		for {
			observed := peak.Load()
			if current <= observed || peak.CompareAndSwap(observed, current) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		inFlight.Add(-1)
		return 0
	})

	if peak.Load() > workers {
		t.Errorf("observed %d concurrent calls, expected at most %d", peak.Load(), workers)
	}
}

func TestMapOrderedEmptyInput(t *testing.T) {
	results := mapOrdered(context.Background(), 4, nil, func(ctx context.Context, s string) string {
		return s
	})

	if len(results) != 0 {
		t.Errorf("expected no results for empty input, got %d", len(results))
	}
}

func TestMapOrderedClampsWorkerCount(t *testing.T) {
	results := mapOrdered(context.Background(), 0, []int{1, 2, 3}, func(ctx context.Context, n int) int {
		return n * 2
	})

	expected := []int{2, 4, 6}
	for i, result := range results {
		if result != expected[i] {
			t.Errorf("result[%d] = %d, expected %d", i, result, expected[i])
		}
	}
}
