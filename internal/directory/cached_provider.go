package directory

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/slotwise/slotwise/internal/scheduling/domain"
)

// DefaultCacheTTL keeps cached availability short-lived; directory state
// goes stale quickly once people accept invites.
const DefaultCacheTTL = 60 * time.Second

// CachedProvider memoizes availability responses in Redis, keyed by the
// attendee set and interval. Cache errors fall through to the inner
// provider; the cache is an optimization, never a correctness dependency.
type CachedProvider struct {
	inner  domain.AvailabilityProvider
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedProvider creates a Redis-backed caching decorator.
func NewCachedProvider(inner domain.AvailabilityProvider, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedProvider {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedProvider{inner: inner, client: client, ttl: ttl, logger: logger}
}

// Resolve serves from cache when possible, otherwise resolves and stores.
func (p *CachedProvider) Resolve(ctx context.Context, attendeeIDs []uuid.UUID, interval domain.TimeRange) ([]domain.AvailabilityRecord, error) {
	key := cacheKey(attendeeIDs, interval)

	cached, err := p.client.Get(ctx, key).Result()
	if err == nil {
		var records []domain.AvailabilityRecord
		if err := json.Unmarshal([]byte(cached), &records); err == nil {
			return records, nil
		}
		// Corrupt entry: fall through and overwrite.
	} else if err != redis.Nil {
		p.logger.Debug("availability cache read failed", "error", err)
	}

	records, err := p.inner.Resolve(ctx, attendeeIDs, interval)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(records); err == nil {
		if err := p.client.Set(ctx, key, payload, p.ttl).Err(); err != nil {
			p.logger.Debug("availability cache write failed", "error", err)
		}
	}
	return records, nil
}

func cacheKey(attendeeIDs []uuid.UUID, interval domain.TimeRange) string {
	ids := make([]string, len(attendeeIDs))
	for i, id := range attendeeIDs {
		ids[i] = id.String()
	}
	sort.Strings(ids)

	var b strings.Builder
	b.WriteString("availability:")
	b.WriteString(interval.Start.UTC().Format(time.RFC3339))
	b.WriteString(":")
	b.WriteString(interval.End.UTC().Format(time.RFC3339))
	b.WriteString(":")
	b.WriteString(strings.Join(ids, ","))
	return b.String()
}
