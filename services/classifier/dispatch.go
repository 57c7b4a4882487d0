package classifier

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// mapOrdered applies fn to every element of inputs with at most workers
// calls in flight, a fixed admission-control knob against upstream rate
// limits. Each worker writes its result at its assigned index, so output
// element i corresponds to input element i no matter how completions
// interleave. fn reports failures through its result value, never by
// aborting the batch; mapOrdered returns only once every input finished.
func mapOrdered[T, R any](ctx context.Context, workers int, inputs []T, fn func(context.Context, T) R) []R {
	if workers < 1 {
		workers = 1
	}

	results := make([]R, len(inputs))

	var g errgroup.Group
	g.SetLimit(workers)

	for i, input := range inputs {
		g.Go(func() error {
			results[i] = fn(ctx, input)
			return nil
		})
	}

	g.Wait()
	return results
}
