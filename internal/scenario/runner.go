package scenario

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Run evaluates sets concurrently with at most workers goroutines and returns
// the reports in the order of sets. workers <= 0 means GOMAXPROCS.
// Sets not yet started when ctx is cancelled are skipped and ctx.Err() is
// returned alongside the reports that did complete.
func Run(parent context.Context, sets []Set, workers int) ([]Report, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	reports := make([]Report, len(sets))
	done := make([]bool, len(sets))

	g, ctx := errgroup.WithContext(parent)
	g.SetLimit(workers)

	for i := range sets {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = Evaluate(sets[i])
			done[i] = true
			return nil
		})
	}

	err := g.Wait()

	completed := reports[:0]
	for i, r := range reports {
		if done[i] {
			completed = append(completed, r)
		}
	}
	if err == nil && len(completed) < len(sets) {
		err = parent.Err()
	}
	return completed, err
}
