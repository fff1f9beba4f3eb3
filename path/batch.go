package path

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/JoelDorrington/hexglobe/grid"
)

// Request is one start/goal pair for batch search.
type Request struct {
	Start int32
	Goal  int32
}

// Result is the outcome of one batch request. Nodes is nil when no path
// was found.
type Result struct {
	Found bool
	Cost  float64
	Nodes []int32
}

// FindPaths resolves many independent requests against one immutable
// topology concurrently. Each worker draws its own Finder and Buffer
// from a pool so no scratch is shared between in-flight searches.
// workers <= 0 means one goroutine per request, bounded by the runtime.
func FindPaths(ctx context.Context, t *grid.Topology, reqs []Request, workers int) ([]Result, error) {
	results := make([]Result, len(reqs))
	n := t.NodeCount()

	type scratch struct {
		finder *Finder
		buf    Buffer
	}
	pool := sync.Pool{
		New: func() any { return &scratch{finder: NewFinder(n)} },
	}

	eg, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		eg.SetLimit(workers)
	}
	for i, req := range reqs {
		i, req := i, req
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sc := pool.Get().(*scratch)
			defer pool.Put(sc)

			cost, found := sc.finder.TryFindPath(t, req.Start, req.Goal, &sc.buf)
			if found {
				nodes := make([]int32, sc.buf.Count)
				copy(nodes, sc.buf.Path())
				results[i] = Result{Found: true, Cost: cost, Nodes: nodes}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
