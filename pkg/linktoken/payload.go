// Package linktoken mints and verifies the compact signed tokens used to pair
// an external account with a chat identity.
//
// A token is two unpadded base64url segments joined by a dot:
//
//	base64url(JSON(payload)) "." base64url(HMAC-SHA256(secret, base64url(JSON(payload))))
//
// The signature covers the encoded payload bytes only. Verification is
// stateless; a token may be verified any number of times until it expires.
package linktoken

import (
	"regexp"
	"time"
)

// Version is the only payload schema revision this package mints or accepts.
const Version = 1

const (
	// DefaultTTL is used when Mint is called with a zero ttl.
	DefaultTTL = 600 * time.Second

	// MinTTL is the floor every requested ttl is clamped to.
	MinTTL = 60 * time.Second

	// MinNonceLength is the shortest nonce Mint accepts.
	MinNonceLength = 16
)

var accountIDPattern = regexp.MustCompile(`^\d{17}$`)

// Payload is the signed claim carried by a token. Instants are milliseconds
// since the Unix epoch.
type Payload struct {
	Version   int    `json:"version"`
	AccountID string `json:"accountId"`
	Nonce     string `json:"nonce,omitempty"`
	IssuedAt  int64  `json:"issuedAt"`
	ExpiresAt int64  `json:"expiresAt"`
}

// IssuedTime returns IssuedAt as a time.Time.
func (p Payload) IssuedTime() time.Time { return time.UnixMilli(p.IssuedAt) }

// ExpiryTime returns ExpiresAt as a time.Time.
func (p Payload) ExpiryTime() time.Time { return time.UnixMilli(p.ExpiresAt) }

// ValidAccountID reports whether id is a 17-digit numeric account identifier.
func ValidAccountID(id string) bool {
	return accountIDPattern.MatchString(id)
}

// ValidNonce reports whether nonce is acceptable to Mint. The empty nonce is
// valid because the field is optional.
func ValidNonce(nonce string) bool {
	return nonce == "" || len(nonce) >= MinNonceLength
}

// Minted is the result of Mint. TTL and ExpiresAt are convenience metadata
// for the caller; only Token is meant to travel.
type Minted struct {
	Token     string
	TTL       time.Duration
	ExpiresAt time.Time
	Payload   Payload
}
