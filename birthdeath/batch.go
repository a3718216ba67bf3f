package birthdeath

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// SimulateMany runs `count` independent simulations with the same
// parameters, at most `workers` at a time (workers < 1 means no limit).
// Run i draws its randomness from NewRand(seed, i), so the results, which
// are returned in run order, do not depend on the number of workers.
//
// The first error stops the runs that haven't started yet and is returned
// along with no results. Cancelling ctx has the same effect.
func SimulateMany(
	ctx context.Context,
	seed uint64,
	p Params,
	count, workers int,
) ([]*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("birthdeath: negative number of runs %d", count)
	}

	results := make([]*Result, count)
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i := 0; i < count; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Simulate(NewRand(seed, uint64(i)), p)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
