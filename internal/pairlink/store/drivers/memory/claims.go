package memory

import (
	"context"
	"time"

	"github.com/aussiebroadwan/pairlink/internal/pairlink/domain"
	"github.com/aussiebroadwan/pairlink/internal/pairlink/store"
	"github.com/aussiebroadwan/pairlink/pkg/idx"
)

// claimRepo is the Claims view of Store.
type claimRepo Store

func (r *claimRepo) PutClaim(_ context.Context, rec domain.ClaimRecord) (domain.ClaimRecord, error) {
	s := (*Store)(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ClaimRecord{}, store.ErrClosed
	}

	now := s.now()

	// Abandoned attempts are never polled again, so lazy eviction alone
	// would let them pile up.
	s.sweepLocked(now)

	rec = rec.Clone()
	rec.ID = idx.NewAt(now).String()
	rec.Claimed = true
	rec.CreatedAt = now
	s.claims[rec.Code] = rec

	return rec.Clone(), nil
}

func (r *claimRepo) GetClaim(_ context.Context, code string) (domain.ClaimRecord, error) {
	s := (*Store)(r)

	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return domain.ClaimRecord{}, store.ErrClosed
	}
	rec, ok := s.claims[code]
	s.mu.RUnlock()

	if !ok {
		return domain.ClaimRecord{}, store.ErrNotFound
	}

	now := s.now()
	if !rec.Expired(now, s.ttl) {
		return rec.Clone(), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Someone may have re-claimed the code between the two locks.
	if cur, ok := s.claims[code]; ok && cur.Expired(now, s.ttl) {
		delete(s.claims, code)
	}
	return domain.ClaimRecord{}, store.ErrNotFound
}

func (r *claimRepo) DeleteExpiredClaims(_ context.Context) (int, error) {
	s := (*Store)(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, store.ErrClosed
	}
	return s.sweepLocked(s.now()), nil
}

func (r *claimRepo) CountClaims(_ context.Context) (int, error) {
	s := (*Store)(r)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, store.ErrClosed
	}
	return len(s.claims), nil
}

// sweepLocked drops expired records. s.mu must be held for writing.
func (s *Store) sweepLocked(now time.Time) int {
	removed := 0
	for code, rec := range s.claims {
		if rec.Expired(now, s.ttl) {
			delete(s.claims, code)
			removed++
		}
	}
	return removed
}
