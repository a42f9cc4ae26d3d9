package service

import (
	"context"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"review_system/internal/metrics"
	"review_system/internal/utils"
)

const titleGenerationKey = "titles:gen"

// TitleCache stores rendered title lookups. Every key embeds the current
// generation, so bumping the generation retires all entries at once.
type TitleCache struct {
	cache utils.Cache
	ttl   time.Duration
}

func NewTitleCache(cache utils.Cache, ttl time.Duration) *TitleCache {
	if cache == nil {
		cache = utils.NopCache{}
	}
	return &TitleCache{cache: cache, ttl: ttl}
}

func (c *TitleCache) key(ctx context.Context, suffix string) string {
	var gen int64
	if _, err := c.cache.Get(ctx, titleGenerationKey, &gen); err != nil {
		logrus.WithError(err).Warn("Failed to read title cache generation")
	}
	return "titles:" + strconv.FormatInt(gen, 10) + ":" + suffix
}

// load fills dest from the cache and reports whether it was found.
func (c *TitleCache) load(ctx context.Context, key string, dest any) bool {
	found, err := c.cache.Get(ctx, key, dest)
	switch {
	case err != nil:
		metrics.TitleCache.WithLabelValues("error").Inc()
		logrus.WithError(err).WithField("key", key).Warn("Failed to read title cache")
		return false
	case found:
		metrics.TitleCache.WithLabelValues("hit").Inc()
		return true
	}
	metrics.TitleCache.WithLabelValues("miss").Inc()
	return false
}

func (c *TitleCache) store(ctx context.Context, key string, value any) {
	if err := c.cache.Set(ctx, key, value, c.ttl); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Failed to write title cache")
	}
}

// invalidate retires every cached title response.
func (c *TitleCache) invalidate(ctx context.Context) {
	if err := c.cache.Set(ctx, titleGenerationKey, time.Now().UnixNano(), 0); err != nil {
		logrus.WithError(err).Warn("Failed to bump title cache generation")
	}
}
