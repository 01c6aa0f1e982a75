package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aussiebroadwan/pairlink/internal/pairlink/domain"
	"github.com/aussiebroadwan/pairlink/internal/pairlink/store"
)

// DefaultClaimTTL is how long a claim stays visible to pollers.
const DefaultClaimTTL = 5 * time.Minute

type Options struct {
	// ClaimTTL defaults to DefaultClaimTTL.
	ClaimTTL time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

// Store keeps claim records in a map guarded by an RWMutex. Nothing survives
// a restart and nothing is shared between processes.
type Store struct {
	mu     sync.RWMutex
	claims map[string]domain.ClaimRecord
	closed bool

	ttl time.Duration
	now func() time.Time
}

var _ store.Store = (*Store)(nil)

func NewStore(opts Options) *Store {
	s := &Store{
		claims: make(map[string]domain.ClaimRecord),
		ttl:    opts.ClaimTTL,
		now:    opts.Now,
	}
	if s.ttl <= 0 {
		s.ttl = DefaultClaimTTL
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *Store) Claims() store.Claims { return (*claimRepo)(s) }

// ClaimTTL returns the configured record lifetime.
func (s *Store) ClaimTTL() time.Duration { return s.ttl }

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	clear(s.claims)
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return store.ErrClosed
	}
	return nil
}
