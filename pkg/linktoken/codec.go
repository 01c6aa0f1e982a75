package linktoken

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Signature segments are decoded strictly so that flipping the unused low
// bits of the final character is still caught.
var sigEncoding = base64.RawURLEncoding.Strict()

// Codec mints and verifies tokens with a single shared secret. It holds no
// mutable state and is safe for concurrent use.
type Codec struct {
	secret     []byte
	now        func() time.Time
	defaultTTL time.Duration
}

// Option configures a Codec.
type Option func(*Codec)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

// WithDefaultTTL changes the ttl used when Mint receives zero. Values below
// MinTTL are raised to MinTTL.
func WithDefaultTTL(ttl time.Duration) Option {
	return func(c *Codec) {
		if ttl > 0 {
			c.defaultTTL = max(ttl, MinTTL)
		}
	}
}

// New returns a Codec signing with secret. An empty secret is accepted here
// so a misconfigured service can still start and report the problem; every
// Mint and Verify call then fails with ErrMissingSecret.
func New(secret []byte, opts ...Option) *Codec {
	c := &Codec{
		secret:     append([]byte(nil), secret...),
		now:        time.Now,
		defaultTTL: DefaultTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether a signing secret is present.
func (c *Codec) Configured() bool { return len(c.secret) > 0 }

// DefaultTTL returns the ttl applied when Mint is called with zero.
func (c *Codec) DefaultTTL() time.Duration { return c.defaultTTL }

// EffectiveTTL resolves a requested ttl the same way Mint does: zero means
// the default, anything else is clamped up to MinTTL.
func (c *Codec) EffectiveTTL(ttl time.Duration) time.Duration {
	if ttl == 0 {
		return c.defaultTTL
	}
	return max(ttl, MinTTL)
}

// Mint signs a new payload for accountID. nonce may be empty.
func (c *Codec) Mint(accountID, nonce string, ttl time.Duration) (Minted, error) {
	if !ValidAccountID(accountID) {
		return Minted{}, ErrInvalidAccountID
	}
	if !ValidNonce(nonce) {
		return Minted{}, ErrInvalidNonce
	}
	if !c.Configured() {
		return Minted{}, ErrMissingSecret
	}

	ttl = c.EffectiveTTL(ttl)
	now := c.now()
	payload := Payload{
		Version:   Version,
		AccountID: accountID,
		Nonce:     nonce,
		IssuedAt:  now.UnixMilli(),
		ExpiresAt: now.UnixMilli() + ttl.Milliseconds(),
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return Minted{}, fmt.Errorf("linktoken: encode payload: %w", err)
	}
	encoded := base64.RawURLEncoding.EncodeToString(raw)

	sig, err := c.sign(encoded)
	if err != nil {
		return Minted{}, err
	}

	return Minted{
		Token:     encoded + "." + sig,
		TTL:       ttl,
		ExpiresAt: payload.ExpiryTime(),
		Payload:   payload,
	}, nil
}

// Verify checks the signature, schema version and expiry of token and returns
// its payload. The signature is checked before anything in the payload is
// decoded. An expired token still returns its payload alongside ErrExpired.
func (c *Codec) Verify(token string) (Payload, error) {
	if !c.Configured() {
		return Payload{}, ErrMissingSecret
	}

	dot := strings.LastIndexByte(token, '.')
	if dot < 0 {
		return Payload{}, ErrBadSignature
	}
	encoded, encodedSig := token[:dot], token[dot+1:]

	sig, err := sigEncoding.DecodeString(encodedSig)
	if err != nil {
		return Payload{}, ErrBadSignature
	}

	// HMAC Verify compares with hmac.Equal, which is constant time.
	if err := jwt.SigningMethodHS256.Verify(encoded, sig, c.secret); err != nil {
		return Payload{}, ErrBadSignature
	}

	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return Payload{}, ErrMalformedPayload
	}

	var payload Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Payload{}, ErrMalformedPayload
	}

	if payload.Version != Version {
		return Payload{}, ErrUnsupportedVersion
	}

	if c.now().UnixMilli() > payload.ExpiresAt {
		return payload, ErrExpired
	}

	return payload, nil
}

func (c *Codec) sign(encoded string) (string, error) {
	sig, err := jwt.SigningMethodHS256.Sign(encoded, c.secret)
	if err != nil {
		return "", fmt.Errorf("linktoken: sign payload: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(sig), nil
}
