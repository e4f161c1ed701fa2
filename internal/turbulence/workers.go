package turbulence

import "golang.org/x/sync/errgroup"

// parallelFor runs fn(i) for i in [0, count) on at most workers goroutines
// and returns when all calls have finished.
func parallelFor(count, workers int, fn func(i int)) {
	if workers < 1 {
		workers = 1
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < count; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	// Tasks never fail; Wait only joins them.
	_ = g.Wait()
}
