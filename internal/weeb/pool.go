package weeb

import "golang.org/x/sync/errgroup"

// runAll executes every task on a bounded worker pool and waits for all of
// them, regardless of completion order. The result collapses to a single
// bool: false when any task returned an error.
//
// There is deliberately no shared cancellation: a failing task does not
// abort its in-flight peers, so partial side effects (pages already fetched
// into the byte cache) survive a failed batch. Callers that need to know
// what completed check the data itself, not this result.
func runAll(tasks []func() error, workers int) bool {
	if workers < 1 {
		workers = 1
	}

	var g errgroup.Group
	g.SetLimit(workers)

	for _, task := range tasks {
		g.Go(task)
	}

	return g.Wait() == nil
}
