package pairsdk

import "encoding/json"

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	// OK is always false for errors
	OK bool `json:"ok"`

	// Error is a stable machine-readable code (e.g., "bad_account_id")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description,omitempty"`
}

// ============================================================================
// Token Types
// ============================================================================

// TokenRequest is the body of POST /token.
type TokenRequest struct {
	// AccountID is the 17-digit account identifier the token is minted for
	AccountID string `json:"accountId"`

	// Nonce optionally binds the token to a client session (at least 16 chars)
	Nonce string `json:"nonce,omitempty"`

	// TTLSeconds is the requested lifetime. Zero is omitted from the request,
	// which gives the server default.
	// Values below 60 are raised to 60.
	TTLSeconds int `json:"ttlSeconds,omitempty"`
}

// TokenResponse is returned from POST /token.
type TokenResponse struct {
	OK bool `json:"ok"`

	// Token is the signed pairing token
	Token string `json:"token"`

	// TTLSeconds is the effective lifetime after defaulting and clamping
	TTLSeconds int `json:"ttlSeconds"`

	// ExpiresAt is the expiry instant in milliseconds since the Unix epoch
	ExpiresAt int64 `json:"expiresAt"`
}

// VerifyRequest is the body of POST /verify.
type VerifyRequest struct {
	Token string `json:"token"`
}

// VerifyResponse is returned from POST /verify for a valid token.
type VerifyResponse struct {
	OK        bool   `json:"ok"`
	AccountID string `json:"accountId"`
	Nonce     string `json:"nonce,omitempty"`
	IssuedAt  int64  `json:"issuedAt"`
	ExpiresAt int64  `json:"expiresAt"`
}

// ============================================================================
// Pairing Types
// ============================================================================

// Identity is the chat-platform user that claimed a pairing code.
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName,omitempty"`
}

// ClaimRequest is the body of POST /pair-claim, sent by the bot once a user
// has completed pairing.
type ClaimRequest struct {
	// Code is the pairing code in RW-XXXX-XXXX form (case-insensitive)
	Code string `json:"code"`

	// Identity is the chat-platform user that claimed the code
	Identity Identity `json:"identity"`

	// GuildID is the chat server the claim happened in
	GuildID string `json:"guildId"`

	// AccountID and Extra are stored alongside the claim but never interpreted
	AccountID string          `json:"accountId,omitempty"`
	Extra     json.RawMessage `json:"extra,omitempty" swaggertype:"object"`
}

// ClaimResponse is returned from POST /pair-claim.
type ClaimResponse struct {
	OK      bool   `json:"ok"`
	Code    string `json:"code"`
	GuildID string `json:"guildId"`

	// ClaimedAt is the instant the claim was stored, in milliseconds
	ClaimedAt int64 `json:"claimedAt"`
}

// PairStatusResponse is returned from GET /pair-status. Identity is only set
// when Claimed is true.
type PairStatusResponse struct {
	Claimed  bool      `json:"claimed"`
	Identity *Identity `json:"identity,omitempty"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status ("ok" or "degraded")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of the components /readyz inspects.
type HealthChecks struct {
	// Store indicates the claim store status
	Store string `json:"store"`

	// Signer indicates whether a token signing secret is configured
	Signer string `json:"signer"`
}
