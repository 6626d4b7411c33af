// Package batch runs independent proof-verification jobs across a
// fixed pool of goroutines. It is the one place in this module where
// concurrency is legitimate: a single verification run is a strictly
// sequential three-phase interpreter (SPEC_FULL.md §5), but nothing
// stops a caller from handing the checker many unrelated (theory,
// claims, proof) triples at once.
//
// The pool shape (an unbuffered task channel drained by a fixed worker
// goroutine count, closed and waited on once every job has been
// handed out) is adapted from gitrdm-gokando's internal/parallel.WorkerPool,
// with the dynamic autoscaling, backpressure and deadlock-detection
// machinery dropped: a batch of proof jobs has no queueing pathology a
// fixed worker count doesn't already handle, so that machinery has no
// SPEC_FULL.md component to serve (see DESIGN.md).
package batch

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/gitrdm/mlproofcheck/internal/obslog"
	"github.com/gitrdm/mlproofcheck/pkg/bytesource"
	"github.com/gitrdm/mlproofcheck/pkg/verifier"
)

// Job is one independently verifiable proof: the byte sources for its
// theory, claims and proof streams, plus a caller-chosen label carried
// through to its Outcome for reporting.
type Job struct {
	Label  string
	Theory bytesource.NextFunc
	Claims bytesource.NextFunc
	Proof  bytesource.NextFunc
}

// Outcome pairs a Job's Label with its verification result.
type Outcome struct {
	Label  string
	Result verifier.Result
	Err    error
}

// Options configures Run. Workers <= 0 defaults to runtime.NumCPU().
type Options struct {
	Workers int
	Logger  obslog.Logger
}

// Run verifies every job, spread across a bounded worker pool, and
// returns one Outcome per job in the same order the jobs were given
// (not completion order). The returned error is a *multierror.Error
// aggregating every job's failure, or nil if all jobs verified; a
// per-job failure never stops the other jobs from running. If ctx is
// cancelled, jobs not yet handed to a worker are not run and keep a
// zero Outcome; when no job failed, ctx.Err() is then returned.
func Run(ctx context.Context, jobs []Job, opts Options) ([]Outcome, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	log := opts.Logger
	if log == nil {
		log = obslog.Null()
	}

	outcomes := make([]Outcome, len(jobs))
	indices := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				job := jobs[i]
				log.Debug("verifying job", "label", job.Label, "index", i)
				res, err := verifier.Verify(job.Theory, job.Claims, job.Proof, verifier.Options{Logger: log})
				outcomes[i] = Outcome{Label: job.Label, Result: res, Err: err}
			}
		}()
	}

feed:
	for i := range jobs {
		select {
		case indices <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(indices)
	wg.Wait()

	var errs *multierror.Error
	for _, o := range outcomes {
		if o.Err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", o.Label, o.Err))
		}
	}
	if errs != nil {
		return outcomes, errs.ErrorOrNil()
	}
	if ctx.Err() != nil {
		return outcomes, ctx.Err()
	}
	return outcomes, nil
}
