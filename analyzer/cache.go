package analyzer

import (
	"fmt"
	"math/big"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/arloliu/cindex/codec"
	"github.com/arloliu/cindex/internal/hash"
)

// CachedAnalyzer memoizes reports in a ristretto cache keyed by the xxHash64 of the index.
//
// A hit is only served when the cached report's index equals the requested one, so hash
// collisions fall through to a fresh analysis. Cached reports are cloned on the way out.
type CachedAnalyzer struct {
	analyzer *Analyzer
	cache    *ristretto.Cache[uint64, *Report]
}

// NewCached wraps an analyzer with a cache holding up to maxReports reports.
func NewCached(analyzer *Analyzer, maxReports int64) (*CachedAnalyzer, error) {
	if maxReports <= 0 {
		return nil, fmt.Errorf("cache size must be positive, got %d", maxReports)
	}

	cache, err := ristretto.NewCache(&ristretto.Config[uint64, *Report]{
		NumCounters: maxReports * 10,
		MaxCost:     maxReports,
		BufferItems: 64,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("create report cache: %w", err)
	}

	return &CachedAnalyzer{analyzer: analyzer, cache: cache}, nil
}

// Analyze returns the cached report for index or computes and caches a new one.
func (c *CachedAnalyzer) Analyze(index *big.Int) (*Report, error) {
	if err := codec.CheckIndex(index); err != nil {
		return nil, err
	}

	key := hash.IndexKey(index)
	if cached, ok := c.cache.Get(key); ok && cached.Index.Cmp(index) == 0 {
		return cached.Clone(), nil
	}

	report, err := c.analyzer.Analyze(index)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, report.Clone(), 1)

	return report, nil
}

// Hits returns the number of cache hits, including hits rejected by the index check.
func (c *CachedAnalyzer) Hits() uint64 {
	return c.cache.Metrics.Hits()
}

// Wait blocks until pending cache writes are applied.
func (c *CachedAnalyzer) Wait() {
	c.cache.Wait()
}

// Close releases the cache.
func (c *CachedAnalyzer) Close() {
	c.cache.Close()
}
