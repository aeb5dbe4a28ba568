package analyzer

import (
	"context"
	"math/big"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Reporter produces a report for an index. *Analyzer and *CachedAnalyzer implement it.
type Reporter interface {
	Analyze(index *big.Int) (*Report, error)
}

// AnalyzeAll analyzes indices concurrently with at most limit workers (NumCPU when
// limit <= 0). Reports are returned in input order. The first failure stops new work and
// is returned.
func AnalyzeAll(ctx context.Context, r Reporter, indices []*big.Int, limit int) ([]*Report, error) {
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	reports := make([]*Report, len(indices))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for i, index := range indices {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			report, err := r.Analyze(index)
			if err != nil {
				return err
			}
			reports[i] = report

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return reports, nil
}
