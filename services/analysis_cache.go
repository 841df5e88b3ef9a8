package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"

	"wardrobeapi/models"
)

const analysisCacheTTL = time.Hour

// AnalysisCacheProvider remembers analysis results by image hash.
type AnalysisCacheProvider interface {
	Get(ctx context.Context, imageHash string) (*models.AIAnalysisResult, bool)
	Set(ctx context.Context, imageHash string, result *models.AIAnalysisResult)
}

type AnalysisCache struct {
	cache   *cache.Cache[*models.AIAnalysisResult]
	backend *ristretto.Cache
}

func NewAnalysisCache(maxEntries int64) (*AnalysisCache, error) {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	// every entry costs 1, so MaxCost is the entry count
	ristrettoCache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        maxEntries * 10,
		MaxCost:            maxEntries,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}
	return &AnalysisCache{
		cache:   cache.New[*models.AIAnalysisResult](ristretto_store.NewRistretto(ristrettoCache)),
		backend: ristrettoCache,
	}, nil
}

func (c *AnalysisCache) Get(ctx context.Context, imageHash string) (*models.AIAnalysisResult, bool) {
	result, err := c.cache.Get(ctx, imageHash)
	if err != nil || result == nil {
		return nil, false
	}
	return result.Clone(), true
}

func (c *AnalysisCache) Set(ctx context.Context, imageHash string, result *models.AIAnalysisResult) {
	if result == nil {
		return
	}
	_ = c.cache.Set(ctx, imageHash, result.Clone(), store.WithCost(1), store.WithExpiration(analysisCacheTTL))
	// ristretto applies writes asynchronously
	c.backend.Wait()
}
