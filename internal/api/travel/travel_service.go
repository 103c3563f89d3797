package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/go-travel-consultant/internal/types"
)

var _ Client = (*CachedClient)(nil)

// CachedClient memoizes partner price lookups. Failures are never cached.
type CachedClient struct {
	next   Client
	cache  *cache.Cache
	logger *slog.Logger
}

func NewCachedClient(next Client, ttl, cleanup time.Duration, logger *slog.Logger) *CachedClient {
	return &CachedClient{
		next:   next,
		cache:  cache.New(ttl, cleanup),
		logger: logger,
	}
}

func (c *CachedClient) Flights(ctx context.Context, q types.FlightQuery) (json.RawMessage, error) {
	key := cacheKey("flights", q.Origin, q.Destination, q.DepartureDate, q.ReturnDate, currencyOrDefault(q.Currency))
	return c.lookup(ctx, key, func() (json.RawMessage, error) { return c.next.Flights(ctx, q) })
}

func (c *CachedClient) Hotels(ctx context.Context, q types.HotelQuery) (json.RawMessage, error) {
	key := cacheKey("hotels", q.Location, q.CheckIn, q.CheckOut, currencyOrDefault(q.Currency))
	return c.lookup(ctx, key, func() (json.RawMessage, error) { return c.next.Hotels(ctx, q) })
}

func (c *CachedClient) lookup(ctx context.Context, key string, fetch func() (json.RawMessage, error)) (json.RawMessage, error) {
	if cached, found := c.cache.Get(key); found {
		c.logger.DebugContext(ctx, "Cache hit", slog.String("key", key))
		return cached.(json.RawMessage), nil
	}
	raw, err := fetch()
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, raw, cache.DefaultExpiration)
	return raw, nil
}

func cacheKey(kind string, parts ...string) string {
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return fmt.Sprintf("%s:%s", kind, strings.Join(parts, "|"))
}
