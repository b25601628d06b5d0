package hints

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/justestif/go-moodmuse/internal/lastfm"
	"github.com/justestif/go-moodmuse/internal/textnorm"
)

// CacheTTL is the duration after which cached tags are considered stale.
const CacheTTL = 30 * 24 * time.Hour

const cachePrefix = "moodmuse:tags:"

type cachedTags struct {
	Tags   []lastfm.Tag  `json:"tags"`
	Source lastfm.Source `json:"source"`
}

// CachedFetcher wraps a TagFetcher with a Redis read-through cache so
// repeated imports do not hit Last.fm again. Cache failures fall back to
// the wrapped fetcher.
type CachedFetcher struct {
	rdb     *redis.Client
	fetcher TagFetcher
	ttl     time.Duration
}

// NewCachedFetcher creates a CachedFetcher with CacheTTL.
func NewCachedFetcher(rdb *redis.Client, fetcher TagFetcher) *CachedFetcher {
	return &CachedFetcher{rdb: rdb, fetcher: fetcher, ttl: CacheTTL}
}

// GetTags implements TagFetcher.
func (c *CachedFetcher) GetTags(ctx context.Context, artist, title string) ([]lastfm.Tag, lastfm.Source, error) {
	key := cacheKey(artist, title)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var hit cachedTags
		if json.Unmarshal(raw, &hit) == nil {
			return hit.Tags, hit.Source, nil
		}
	} else if !errors.Is(err, redis.Nil) && ctx.Err() != nil {
		return nil, lastfm.SourceNone, ctx.Err()
	}

	tags, source, err := c.fetcher.GetTags(ctx, artist, title)
	if err != nil {
		return nil, lastfm.SourceNone, err
	}

	if raw, err := json.Marshal(cachedTags{Tags: tags, Source: source}); err == nil {
		// best effort
		_ = c.rdb.Set(ctx, key, raw, c.ttl).Err()
	}
	return tags, source, nil
}

func cacheKey(artist, title string) string {
	return fmt.Sprintf("%s%s|%s", cachePrefix, textnorm.Normalize(artist), textnorm.Normalize(title))
}

var _ TagFetcher = (*CachedFetcher)(nil)
