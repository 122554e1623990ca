package solver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/pvtcalc/internal/eos"
)

// Outcome is the result of one query of a batch.
type Outcome struct {
	Query eos.Query
	State *eos.State
	Err   error
}

// Batch solves queries in parallel on at most workers goroutines; zero
// means one per CPU. Failures are recorded per query and do not stop the
// others. The returned error is non-nil only when ctx ends the batch.
func (e *Engine) Batch(ctx context.Context, queries []eos.Query, workers int) ([]Outcome, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	out := make([]Outcome, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, q := range queries {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			s, err := e.Solve(gctx, q)
			out[i] = Outcome{Query: q, State: s, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, ctx.Err()
}

// Failed counts the outcomes that carry an error.
func Failed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}
