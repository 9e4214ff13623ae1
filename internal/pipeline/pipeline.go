// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"degen/internal/jobs"
	"degen/internal/service"
)

// Config controls the batch pipeline.
type Config struct {
	Threads int // number of concurrent jobs (>=1)
}

// Outcome is one finished job. Err holds per-job input errors; the
// batch keeps going past them.
type Outcome struct {
	Job    jobs.Job
	Design service.Design
	Err    error
}

// ForEachDesign designs every job and calls visit once per job, from a
// single goroutine, in completion order. It returns the first visit error
// or ctx's error; per-job design errors are reported through Outcome.Err.
func ForEachDesign(ctx context.Context, cfg Config, list []jobs.Job, d Designer, visit func(Outcome) error) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	vctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(vctx)
	g.SetLimit(cfg.Threads)

	results := make(chan Outcome, cfg.Threads*2)

	// Collector
	var (
		cerr error
		done = make(chan struct{})
	)
	go func() {
		defer close(done)
		for o := range results {
			if cerr != nil {
				continue
			}
			if cerr = visit(o); cerr != nil {
				cancel()
			}
		}
	}()

	// Feed work
feed:
	for _, j := range list {
		j := j
		select {
		case <-gctx.Done():
			break feed
		default:
		}
		g.Go(func() error {
			des, err := d.Design(gctx, service.Request{Include: j.Include, Avoid: j.Avoid})
			if err != nil && isContextErr(err) {
				return err
			}
			select {
			case results <- Outcome{Job: j, Design: des, Err: err}:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}

	gerr := g.Wait()
	close(results)
	<-done

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if cerr != nil {
		return cerr
	}
	return gerr
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
