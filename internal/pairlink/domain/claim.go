package domain

import (
	"encoding/json"
	"time"
)

// Identity is the chat-platform user that claimed a pairing code.
type Identity struct {
	ID          string // platform user id (a Discord snowflake)
	DisplayName string // optional
}

// ClaimRecord records that Identity claimed Code. Records are never mutated
// after they are stored; a second claim for the same code replaces the first.
type ClaimRecord struct {
	ID        string // ULID, only used to correlate log lines
	Code      string // normalized pairing code
	Claimed   bool   // always true for a stored record
	CreatedAt time.Time
	Identity  Identity
	GuildID   string
	AccountID string          // optional passthrough
	Extra     json.RawMessage // optional passthrough, opaque to the cache
}

// Age returns how long ago the record was stored.
func (r ClaimRecord) Age(now time.Time) time.Duration {
	return now.Sub(r.CreatedAt)
}

// Expired reports whether the record has outlived ttl. A record exactly ttl
// old is still live.
func (r ClaimRecord) Expired(now time.Time, ttl time.Duration) bool {
	return r.Age(now) > ttl
}

// Clone returns a copy that shares no memory with r.
func (r ClaimRecord) Clone() ClaimRecord {
	if r.Extra != nil {
		r.Extra = append(json.RawMessage(nil), r.Extra...)
	}
	return r
}

// ClaimStatus is what a polling client learns about a code.
type ClaimStatus struct {
	Claimed  bool
	Identity *Identity // nil unless Claimed
}
