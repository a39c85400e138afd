package regression

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"
)

type ForestParams struct {
	Trees           int
	MaxDepth        int
	MinSamplesSplit int
	Seed            int64
	// Workers bounds concurrent tree fits; <= 0 means GOMAXPROCS.
	Workers int
}

func DefaultForestParams() ForestParams {
	return ForestParams{
		Trees:           100,
		MaxDepth:        10,
		MinSamplesSplit: 5,
		Seed:            42,
	}
}

// Forest averages bootstrap-trained regression trees. Every tree owns a PRNG
// seeded from Seed and its index, so the result is independent of Workers.
type Forest struct {
	Trees    []Tree
	Features int
}

func FitForest(ctx context.Context, X [][]float64, y []float64, p ForestParams) (*Forest, error) {
	features, err := checkShape(X, y)
	if err != nil {
		return nil, err
	}
	if p.Trees <= 0 || p.MaxDepth <= 0 || p.MinSamplesSplit < 2 {
		return nil, fmt.Errorf("fit forest: invalid params %+v", p)
	}
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	trees := make([]Tree, p.Trees)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range trees {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(p.Seed + int64(i)))
			trees[i] = fitTree(X, y, bootstrap(rng, len(y)), p.MaxDepth, p.MinSamplesSplit)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fit forest: %w", err)
	}
	return &Forest{Trees: trees, Features: features}, nil
}

func (f *Forest) Kind() string { return KindForest }

func (f *Forest) Predict(x []float64) (float64, error) {
	if len(x) != f.Features {
		return 0, ErrFeatureCount
	}
	if len(f.Trees) == 0 {
		return 0, fmt.Errorf("forest has no trees")
	}
	sum := 0.0
	for i := range f.Trees {
		sum += f.Trees[i].predict(x)
	}
	return sum / float64(len(f.Trees)), nil
}

func bootstrap(rng *rand.Rand, n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = rng.Intn(n)
	}
	return idx
}
