package reference

import (
	"golang.org/x/sync/errgroup"
)

// dispatcher runs step work on a fixed number of workers. One is created
// per scene and its size never changes.
type dispatcher struct {
	workers int
}

func newDispatcher(workers int) *dispatcher {
	return &dispatcher{workers: workers}
}

// run splits n items into at most workers contiguous ranges and calls task
// for each range concurrently.
func (d *dispatcher) run(n int, task func(lo, hi int)) {
	if n == 0 {
		return
	}
	chunk := (n + d.workers - 1) / d.workers

	var g errgroup.Group
	g.SetLimit(d.workers)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			task(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}
