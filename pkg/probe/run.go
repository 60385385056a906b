package probe

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RenderAll renders every scenario on its own goroutine, at most one per CPU.
// Results come back in scenario order. The first failure cancels the rest.
func (r *Renderer) RenderAll(ctx context.Context, scenarios []*Scenario) ([]*Result, error) {
	results := make([]*Result, len(scenarios))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, sc := range scenarios {
		g.Go(func() error {
			res, err := r.Render(ctx, sc)
			if err != nil {
				return fmt.Errorf("scenario %s: %w", sc.Name, err)
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
