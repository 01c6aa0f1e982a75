package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/pairlink/internal/pairlink/domain"
	"github.com/aussiebroadwan/pairlink/internal/pairlink/store"
	"github.com/stretchr/testify/require"
)

// testClock is safe to read from many goroutines.
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestStore(t *testing.T) (*Store, *testClock) {
	t.Helper()
	clock := &testClock{t: time.Unix(1_700_000_000, 0)}
	s := NewStore(Options{Now: clock.Now})
	t.Cleanup(func() { _ = s.Close() })
	return s, clock
}

func claim(code, userID string) domain.ClaimRecord {
	return domain.ClaimRecord{
		Code:     code,
		Identity: domain.Identity{ID: userID},
		GuildID:  "guild1",
	}
}

func TestPutAndGetClaim(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestStore(t)
	claims := s.Claims()

	stored, err := claims.PutClaim(ctx, claim("RW-AB12-CD34", "999"))
	require.NoError(t, err)
	require.True(t, stored.Claimed)
	require.NotEmpty(t, stored.ID)
	require.Equal(t, clock.Now(), stored.CreatedAt)

	got, err := claims.GetClaim(ctx, "RW-AB12-CD34")
	require.NoError(t, err)
	require.Equal(t, stored, got)

	_, err = claims.GetClaim(ctx, "RW-ZZZZ-ZZZZ")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetClaimExpiresLazily(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestStore(t)
	claims := s.Claims()

	_, err := claims.PutClaim(ctx, claim("RW-AB12-CD34", "999"))
	require.NoError(t, err)

	clock.Advance(DefaultClaimTTL)
	_, err = claims.GetClaim(ctx, "RW-AB12-CD34")
	require.NoError(t, err, "a record exactly TTL old is still live")

	clock.Advance(time.Second)
	_, err = claims.GetClaim(ctx, "RW-AB12-CD34")
	require.ErrorIs(t, err, store.ErrNotFound)

	n, err := claims.CountClaims(ctx)
	require.NoError(t, err)
	require.Zero(t, n, "expired record should be evicted on read")
}

func TestPutClaimOverwrites(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestStore(t)
	claims := s.Claims()

	first, err := claims.PutClaim(ctx, claim("RW-AB12-CD34", "first"))
	require.NoError(t, err)

	clock.Advance(time.Minute)
	second, err := claims.PutClaim(ctx, claim("RW-AB12-CD34", "second"))
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	got, err := claims.GetClaim(ctx, "RW-AB12-CD34")
	require.NoError(t, err)
	require.Equal(t, "second", got.Identity.ID)
	require.Equal(t, clock.Now(), got.CreatedAt, "overwrite restarts the TTL")
}

func TestPutClaimSweepsExpired(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestStore(t)
	claims := s.Claims()

	for i := range 5 {
		_, err := claims.PutClaim(ctx, claim(fmt.Sprintf("RW-OLD%d-0000", i), "u"))
		require.NoError(t, err)
	}

	clock.Advance(DefaultClaimTTL + time.Second)
	_, err := claims.PutClaim(ctx, claim("RW-NEW0-0000", "u"))
	require.NoError(t, err)

	n, err := claims.CountClaims(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestDeleteExpiredClaims(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestStore(t)
	claims := s.Claims()

	_, err := claims.PutClaim(ctx, claim("RW-AAAA-0000", "u"))
	require.NoError(t, err)
	clock.Advance(3 * time.Minute)
	_, err = claims.PutClaim(ctx, claim("RW-BBBB-0000", "u"))
	require.NoError(t, err)

	clock.Advance(3 * time.Minute)
	removed, err := claims.DeleteExpiredClaims(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	_, err = claims.GetClaim(ctx, "RW-BBBB-0000")
	require.NoError(t, err)
}

func TestRecordsAreIsolatedFromCallers(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	claims := s.Claims()

	in := claim("RW-AB12-CD34", "999")
	in.Extra = json.RawMessage(`{"type":"pair"}`)
	_, err := claims.PutClaim(ctx, in)
	require.NoError(t, err)

	in.Extra[2] = 'X'

	got, err := claims.GetClaim(ctx, "RW-AB12-CD34")
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"pair"}`, string(got.Extra))

	got.Extra[2] = 'Y'
	again, err := claims.GetClaim(ctx, "RW-AB12-CD34")
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"pair"}`, string(again.Extra))
}

func TestClosedStore(t *testing.T) {
	ctx := context.Background()
	s := NewStore(Options{})
	require.NoError(t, s.Ping(ctx))
	require.Equal(t, DefaultClaimTTL, s.ClaimTTL())

	require.NoError(t, s.Close())
	require.ErrorIs(t, s.Ping(ctx), store.ErrClosed)

	_, err := s.Claims().PutClaim(ctx, claim("RW-AB12-CD34", "999"))
	require.ErrorIs(t, err, store.ErrClosed)
	_, err = s.Claims().GetClaim(ctx, "RW-AB12-CD34")
	require.ErrorIs(t, err, store.ErrClosed)
}

func TestConcurrentClaims(t *testing.T) {
	ctx := context.Background()
	s, clock := newTestStore(t)
	claims := s.Claims()

	const writers = 16
	var wg sync.WaitGroup

	for w := range writers {
		wg.Add(2)

		go func() {
			defer wg.Done()
			code := fmt.Sprintf("RW-W%03d-0000", w)
			for i := range 50 {
				_, err := claims.PutClaim(ctx, claim(code, fmt.Sprintf("user-%d", i)))
				require.NoError(t, err)
				// Every writer also hammers one shared code.
				_, err = claims.PutClaim(ctx, claim("RW-SHAR-ED00", fmt.Sprintf("w%d", w)))
				require.NoError(t, err)
			}
		}()

		go func() {
			defer wg.Done()
			for range 50 {
				rec, err := claims.GetClaim(ctx, "RW-SHAR-ED00")
				if err == nil {
					// A reader sees a whole record or nothing.
					require.True(t, rec.Claimed)
					require.Equal(t, "guild1", rec.GuildID)
					require.NotEmpty(t, rec.Identity.ID)
				}
				clock.Advance(time.Millisecond)
			}
		}()
	}
	wg.Wait()

	n, err := claims.CountClaims(ctx)
	require.NoError(t, err)
	require.Equal(t, writers+1, n)
}
