package testutil

import (
	"errors"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"bkap/internal/sentinel"
)

// Tally counts the outcomes of a Parallel run.
type Tally struct {
	Successes int
	Failures  int
	Missing   int
}

// Total is the number of calls that returned.
func (t Tally) Total() int {
	return t.Successes + t.Failures + t.Missing
}

// Parallel calls fn n times concurrently. All goroutines are released at
// once to maximise contention. Errors matching sentinel.ErrNotFound are
// counted as Missing rather than Failures.
func Parallel(n int, fn func(i int) error) Tally {
	var ok, failed, missing atomic.Int64
	start := make(chan struct{})

	var g errgroup.Group
	for i := range n {
		g.Go(func() error {
			<-start
			switch err := fn(i); {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, sentinel.ErrNotFound):
				missing.Add(1)
			default:
				failed.Add(1)
			}
			return nil
		})
	}
	close(start)
	_ = g.Wait()

	return Tally{
		Successes: int(ok.Load()),
		Failures:  int(failed.Load()),
		Missing:   int(missing.Load()),
	}
}
