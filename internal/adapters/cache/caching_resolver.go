package cache

import (
	"context"
	"log"
	"strings"

	"running-route-service/internal/domain"
	"running-route-service/internal/platform/obs"
	"running-route-service/internal/ports"
)

// CachingResolver consults a PlaceCache before delegating to the upstream
// resolver. Misses are not cached. Cache failures are logged and bypassed.
type CachingResolver struct {
	Upstream ports.PlaceResolver
	Cache    ports.PlaceCache
}

func NewCachingResolver(upstream ports.PlaceResolver, cache ports.PlaceCache) *CachingResolver {
	return &CachingResolver{Upstream: upstream, Cache: cache}
}

// normalize ensures consistent cache keys by collapsing whitespace and case.
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func (r *CachingResolver) Resolve(ctx context.Context, query string) (domain.GeoPoint, bool, error) {
	key := normalize(query)
	if key == "" {
		return domain.GeoPoint{}, false, nil
	}

	if p, ok, err := r.Cache.Get(ctx, key); err != nil {
		log.Printf("req_id=%s place cache read failed: %v", obs.RequestID(ctx), err)
	} else if ok {
		return p, true, nil
	}

	p, ok, err := r.Upstream.Resolve(ctx, query)
	if err != nil || !ok {
		return p, ok, err
	}

	if err := r.Cache.Put(ctx, key, p); err != nil {
		log.Printf("req_id=%s place cache write failed: %v", obs.RequestID(ctx), err)
	}
	return p, true, nil
}
