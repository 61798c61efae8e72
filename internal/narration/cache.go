package narration

import (
	"context"
	"strings"
	"time"

	"procurement-service/internal/models"
	"procurement-service/internal/redisclient"
	"procurement-service/internal/util"

	"go.uber.org/zap"
)

// CachedExplainer memoizes explanation text in Redis. The cache key is
// derived from the selected and rejected item ids plus the deadline, so
// identical decisions reuse one upstream call. All cache failures fall
// through to the inner explainer.
type CachedExplainer struct {
	inner  Explainer
	cache  *redisclient.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedExplainer wraps an explainer with a Redis cache
func NewCachedExplainer(inner Explainer, cache *redisclient.Client, ttl time.Duration) *CachedExplainer {
	return &CachedExplainer{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: util.GetLogger(),
	}
}

// ExplainChoice returns cached text when available, otherwise delegates
func (e *CachedExplainer) ExplainChoice(ctx context.Context, selected models.CatalogItem, rejected []models.CatalogItem, ec ExplainContext) string {
	key := cacheKey(selected, rejected, ec)

	if text, ok, err := e.cache.GetExplanation(ctx, key); err != nil {
		e.logger.Warn("Explanation cache read failed", zap.Error(err))
	} else if ok {
		util.ExplanationCacheHits.Inc()
		return text
	}

	text := e.inner.ExplainChoice(ctx, selected, rejected, ec)

	if err := e.cache.SetExplanation(ctx, key, text, e.ttl); err != nil {
		e.logger.Warn("Explanation cache write failed", zap.Error(err))
	}

	return text
}

func cacheKey(selected models.CatalogItem, rejected []models.CatalogItem, ec ExplainContext) string {
	parts := make([]string, 0, len(rejected)+2)
	parts = append(parts, selected.ID)
	for _, item := range rejected {
		parts = append(parts, item.ID)
	}
	parts = append(parts, formatNumber(ec.DeadlineDays))
	return strings.Join(parts, ":")
}
