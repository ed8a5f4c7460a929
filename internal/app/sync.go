package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"flexisync/internal/adapters/observability"
	"flexisync/internal/domain"
)

// SyncService runs fetch → transform → dedupe → insert across source
// units, strictly one after another. The only mutable state is the
// in-run seen-ids set, owned here for the duration of one run.
type SyncService struct {
	source domain.BookingSource
	repo   domain.ReservationRepository
	cache  domain.Cache
	dir    PropertyDirectory
	pause  time.Duration
}

func NewSyncService(src domain.BookingSource, repo domain.ReservationRepository, cache domain.Cache, dir PropertyDirectory, pause time.Duration) *SyncService {
	return &SyncService{source: src, repo: repo, cache: cache, dir: dir, pause: pause}
}

// SyncProperties fetches and persists bookings for each property in
// turn, over [from, to]. On an authentication failure the remaining
// properties are never attempted; counters accumulated so far stay in
// the returned outcome with AuthErr set.
func (s *SyncService) SyncProperties(ctx context.Context, hotelIDs []string, from, to time.Time) (domain.RunOutcome, error) {
	seen, err := s.repo.ListBookingIDs(ctx)
	if err != nil {
		return domain.RunOutcome{}, fmt.Errorf("load existing booking ids: %w", err)
	}

	var out domain.RunOutcome
	for i, id := range hotelIDs {
		if i > 0 && !pauseCtx(ctx, s.pause) {
			return out, ctx.Err()
		}

		raws, ferr := s.source.FetchBookings(ctx, id, from, to)
		if ferr != nil {
			if errors.Is(ferr, domain.ErrUnauthorized) {
				log.Warn().Str("hotel_id", id).Msg("sync aborted: authentication failed")
				out.AuthErr = ferr
				return out, nil
			}
			// transport/server failure: zero records for this unit
			log.Warn().Str("hotel_id", id).Err(ferr).Msg("fetch failed, skipping unit")
			out.Add(domain.UnitOutcome{Property: s.dir.ResolveName(id, "")})
			continue
		}

		unit := s.syncUnit(ctx, s.dir.ResolveName(id, ""), raws, seen)
		log.Info().
			Str("property", unit.Property).
			Int("inserted", unit.Inserted).
			Int("skipped", unit.Skipped).
			Int("errors", unit.Errors).
			Msg("source unit synced")
		out.Add(unit)
	}

	s.invalidateList(ctx, out)
	return out, nil
}

// SyncRows persists one batch of already-parsed spreadsheet rows as a
// single source unit.
func (s *SyncService) SyncRows(ctx context.Context, rows []map[string]any, label string) (domain.RunOutcome, error) {
	seen, err := s.repo.ListBookingIDs(ctx)
	if err != nil {
		return domain.RunOutcome{}, fmt.Errorf("load existing booking ids: %w", err)
	}

	var out domain.RunOutcome
	unit := s.syncUnit(ctx, label, rows, seen)
	log.Info().
		Str("property", unit.Property).
		Int("inserted", unit.Inserted).
		Int("skipped", unit.Skipped).
		Int("errors", unit.Errors).
		Msg("spreadsheet synced")
	out.Add(unit)

	s.invalidateList(ctx, out)
	return out, nil
}

// syncUnit runs the per-record loop for one source unit. Duplicates are
// filtered twice: against the run's snapshot (plus ids inserted earlier
// in the run), then again at insert time, where a duplicate-key
// violation is an expected race with out-of-band writers.
func (s *SyncService) syncUnit(ctx context.Context, label string, raws []map[string]any, seen map[string]struct{}) domain.UnitOutcome {
	unit := domain.UnitOutcome{Property: label}
	for _, raw := range raws {
		rec := MapBooking(raw, s.dir)
		if unit.Property == "" {
			unit.Property = rec.Property
		}
		if rec.BookingID == "" {
			unit.Errors++
			continue
		}
		if _, dup := seen[rec.BookingID]; dup {
			unit.Skipped++
			continue
		}

		switch err := s.repo.Insert(ctx, rec); {
		case err == nil:
			seen[rec.BookingID] = struct{}{}
			unit.Inserted++
		case errors.Is(err, domain.ErrDuplicate):
			unit.Skipped++
		default:
			log.Warn().Str("booking_id", rec.BookingID).Err(err).Msg("insert failed")
			unit.Errors++
		}
	}
	observability.ObserveSync(unit.Property, "inserted", unit.Inserted)
	observability.ObserveSync(unit.Property, "skipped", unit.Skipped)
	observability.ObserveSync(unit.Property, "error", unit.Errors)
	return unit
}

func (s *SyncService) invalidateList(ctx context.Context, out domain.RunOutcome) {
	if s.cache == nil || out.Inserted == 0 {
		return
	}
	// new generation: every cached list variant, filtered or not, misses
	_ = s.cache.Set(ctx, listVersionKey, time.Now().UnixNano(), 0)
}

// pauseCtx sleeps the inter-unit courtesy pause, returning false if the
// context is canceled first.
func pauseCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
