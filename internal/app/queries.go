package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"flexisync/internal/domain"
)

type QueryService struct {
	repo     domain.ReservationRepository
	cache    domain.Cache
	cacheTTL time.Duration
	group    singleflight.Group
}

func NewQueryService(r domain.ReservationRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

// listVersionKey holds the generation counter every list key carries.
// Bumping it after an inserting run orphans all cached filter variants
// at once, which the TTL then reaps.
const listVersionKey = "reservations:ver"

// ListReservations serves the dashboard table: cache first, then the
// store, with concurrent identical reads collapsed onto one query.
func (s *QueryService) ListReservations(ctx context.Context, f domain.ListFilter) ([]domain.Reservation, error) {
	var ver int64
	_, _ = s.cache.Get(ctx, listVersionKey, &ver)
	key := listCacheKey(ver, f)
	var cached []domain.Reservation
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		rs, err := s.repo.List(ctx, f)
		if err != nil {
			return nil, err
		}
		_ = s.cache.Set(ctx, key, rs, int(s.cacheTTL.Seconds()))
		return rs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Reservation), nil
}

func listCacheKey(ver int64, f domain.ListFilter) string {
	fd := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("2006-01-02")
	}
	return fmt.Sprintf("reservations:%d:%s:%s:%s:%s", ver, fd(f.From), fd(f.To), f.Status, f.Property)
}
