package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/pairlink/internal/pairlink/domain"
)

var (
	ErrNotFound = errors.New("store: not found")
	ErrClosed   = errors.New("store: closed")
)

// Store is the root data access interface. The only driver is the in-process
// memory store; claims are deliberately not durable.
type Store interface {
	Claims() Claims

	// Close releases the store. Later calls fail with ErrClosed.
	Close() error

	// Ping reports whether the store can serve requests.
	Ping(ctx context.Context) error
}

type Claims interface {
	// PutClaim sweeps expired records, then stores rec under rec.Code,
	// replacing any previous record. CreatedAt and ID are assigned by the
	// store and the stored record is returned.
	PutClaim(ctx context.Context, rec domain.ClaimRecord) (domain.ClaimRecord, error)

	// GetClaim returns the live record for code, or ErrNotFound. An expired
	// record is removed on the way out.
	GetClaim(ctx context.Context, code string) (domain.ClaimRecord, error)

	// DeleteExpiredClaims removes every expired record and reports how many
	// went.
	DeleteExpiredClaims(ctx context.Context) (int, error)

	// CountClaims returns the number of stored records, expired or not.
	CountClaims(ctx context.Context) (int, error)
}
