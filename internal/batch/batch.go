// Package batch resolves independent inputs concurrently. Each job is one
// single-threaded parsimony.Resolve call; jobs share no mutable state.
package batch

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"protgroup/internal/parsimony"
)

// Job is one independent resolution.
type Job struct {
	Name    string
	Input   parsimony.Input
	Options parsimony.Options

	// OnDone, when set, is called exactly once per job on its worker
	// goroutine: after Resolve, or with the context error when the job is
	// skipped because the batch was cancelled.
	OnDone func(parsimony.Result, error)
}

// Outcome is the result of one Job.
type Outcome struct {
	Name   string
	Result parsimony.Result
}

// Run resolves jobs with at most workers in flight (0 = all CPUs). Outcomes
// are in job order. The first error cancels jobs that have not started.
func Run(ctx context.Context, jobs []Job, workers int) ([]Outcome, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	out := make([]Outcome, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				if job.OnDone != nil {
					job.OnDone(parsimony.Result{}, err)
				}
				return err
			}
			res, err := parsimony.Resolve(job.Input, job.Options)
			if job.OnDone != nil {
				job.OnDone(res, err)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", job.Name, err)
			}
			out[i] = Outcome{Name: job.Name, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
