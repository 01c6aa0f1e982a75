package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/pairlink/internal/pairlink/service"
	"github.com/aussiebroadwan/pairlink/internal/pairlink/store/drivers/memory"
	"github.com/aussiebroadwan/pairlink/pkg/linktoken"
	"github.com/aussiebroadwan/pairlink/pkg/pairsdk"
	"github.com/aussiebroadwan/pairlink/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const (
	testAccountID = "76561198000000001"
	testSecret    = "bot-callback-secret"
)

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

type testEnv struct {
	router *Router
	clock  *testClock
	store  *memory.Store
}

func newTestEnv(t *testing.T, signingSecret, callbackSecret string) *testEnv {
	t.Helper()

	clock := &testClock{t: time.UnixMilli(1_700_000_000_000)}
	st := memory.NewStore(memory.Options{Now: clock.Now})
	t.Cleanup(func() { _ = st.Close() })

	r := NewRouter("test", callbackSecret, st, slogx.Discard())
	r.TokenService = &service.TokenService{
		Codec: linktoken.New([]byte(signingSecret), linktoken.WithClock(clock.Now)),
	}
	r.PairingService = &service.PairingService{Store: st}
	r.ApplyRoutes()

	return &testEnv{router: r, clock: clock, store: st}
}

func (e *testEnv) do(t *testing.T, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	body := decode[pairsdk.ErrorResponse](t, rec)
	require.False(t, body.OK)
	require.Equal(t, code, body.Error)
}

func TestMintToken(t *testing.T) {
	env := newTestEnv(t, "signing-secret", "")

	rec := env.do(t, http.MethodPost, "/token", `{"accountId":"`+testAccountID+`","ttlSeconds":120}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	resp := decode[pairsdk.TokenResponse](t, rec)
	require.True(t, resp.OK)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, 120, resp.TTLSeconds)
	require.Equal(t, env.clock.Now().Add(120*time.Second).UnixMilli(), resp.ExpiresAt)
}

func TestMintTokenTTL(t *testing.T) {
	env := newTestEnv(t, "signing-secret", "")

	tests := []struct {
		name    string
		body    string
		wantTTL int
	}{
		{"default", `{"accountId":"` + testAccountID + `"}`, 600},
		{"clamped", `{"accountId":"` + testAccountID + `","ttlSeconds":5}`, 60},
		{"explicit zero", `{"accountId":"` + testAccountID + `","ttlSeconds":0}`, 60},
		{"sub-second", `{"accountId":"` + testAccountID + `","ttlSeconds":0.5}`, 60},
		{"just under minimum", `{"accountId":"` + testAccountID + `","ttlSeconds":59.9}`, 60},
		{"negative", `{"accountId":"` + testAccountID + `","ttlSeconds":-30}`, 60},
		{"fraction rounds up", `{"accountId":"` + testAccountID + `","ttlSeconds":90.2}`, 91},
		{"null means default", `{"accountId":"` + testAccountID + `","ttlSeconds":null}`, 600},
		{"snake case", `{"account_id":"` + testAccountID + `","ttl_seconds":90}`, 90},
		{"legacy steamid", `{"steamid":"` + testAccountID + `"}`, 600},
		{"numeric id", `{"steamId":` + testAccountID + `}`, 600},
		{"string ttl", `{"accountId":"` + testAccountID + `","ttlSeconds":"300"}`, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/token", tt.body)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			require.Equal(t, tt.wantTTL, decode[pairsdk.TokenResponse](t, rec).TTLSeconds)
		})
	}
}

func TestMintTokenErrors(t *testing.T) {
	env := newTestEnv(t, "signing-secret", "")

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"short account id", `{"accountId":"12345"}`, pairsdk.ErrorCodeBadAccountID},
		{"missing account id", `{}`, pairsdk.ErrorCodeBadAccountID},
		{"empty body", ``, pairsdk.ErrorCodeBadAccountID},
		{"account id object", `{"accountId":{"a":1}}`, pairsdk.ErrorCodeBadAccountID},
		{"short nonce", `{"accountId":"` + testAccountID + `","nonce":"short"}`, pairsdk.ErrorCodeBadNonce},
		{"short legacy token", `{"accountId":"` + testAccountID + `","token":"short"}`, pairsdk.ErrorCodeBadNonce},
		{"not json", `not json`, pairsdk.ErrorCodeInvalidRequest},
		{"array body", `[1,2]`, pairsdk.ErrorCodeInvalidRequest},
		{"ttl not a number", `{"accountId":"` + testAccountID + `","ttlSeconds":"soon"}`, pairsdk.ErrorCodeInvalidRequest},
		{"ttl too large", `{"accountId":"` + testAccountID + `","ttlSeconds":1e12}`, pairsdk.ErrorCodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/token", tt.body)
			requireError(t, rec, http.StatusBadRequest, tt.wantCode)
		})
	}
}

func TestMintTokenWithoutSecret(t *testing.T) {
	env := newTestEnv(t, "", "")

	rec := env.do(t, http.MethodPost, "/token", `{"accountId":"`+testAccountID+`"}`)
	requireError(t, rec, http.StatusInternalServerError, pairsdk.ErrorCodeNoSecret)

	// Validation still comes first.
	rec = env.do(t, http.MethodPost, "/token", `{"accountId":"1"}`)
	requireError(t, rec, http.StatusBadRequest, pairsdk.ErrorCodeBadAccountID)
}

func TestVerifyToken(t *testing.T) {
	env := newTestEnv(t, "signing-secret", "")

	rec := env.do(t, http.MethodPost, "/token",
		`{"accountId":"`+testAccountID+`","nonce":"0123456789abcdef","ttlSeconds":60}`)
	require.Equal(t, http.StatusOK, rec.Code)
	token := decode[pairsdk.TokenResponse](t, rec).Token

	verifyBody := `{"token":"` + token + `"}`

	rec = env.do(t, http.MethodPost, "/verify", verifyBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[pairsdk.VerifyResponse](t, rec)
	require.True(t, resp.OK)
	require.Equal(t, testAccountID, resp.AccountID)
	require.Equal(t, "0123456789abcdef", resp.Nonce)
	require.Equal(t, int64(60_000), resp.ExpiresAt-resp.IssuedAt)

	// Verification has no side effects.
	rec = env.do(t, http.MethodPost, "/verify", verifyBody)
	require.Equal(t, http.StatusOK, rec.Code)

	env.clock.Advance(61 * time.Second)
	rec = env.do(t, http.MethodPost, "/verify", verifyBody)
	requireError(t, rec, http.StatusBadRequest, pairsdk.ErrorCodeExpiredToken)
}

func TestVerifyRejectsTamperedTokensIdentically(t *testing.T) {
	env := newTestEnv(t, "signing-secret", "")

	rec := env.do(t, http.MethodPost, "/token", `{"accountId":"`+testAccountID+`"}`)
	token := decode[pairsdk.TokenResponse](t, rec).Token
	payload, sig, ok := strings.Cut(token, ".")
	require.True(t, ok)

	flip := func(s string) string {
		if s[0] == 'A' {
			return "B" + s[1:]
		}
		return "A" + s[1:]
	}

	for name, bad := range map[string]string{
		"payload":   flip(payload) + "." + sig,
		"signature": payload + "." + flip(sig),
		"no dot":    payload + sig,
		"empty":     "",
	} {
		t.Run(name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/verify", `{"token":"`+bad+`"}`)
			requireError(t, rec, http.StatusBadRequest, pairsdk.ErrorCodeInvalidToken)
			require.Empty(t, decode[pairsdk.ErrorResponse](t, rec).ErrorDescription)
		})
	}
}

func TestPairClaimAndStatus(t *testing.T) {
	env := newTestEnv(t, "signing-secret", "")

	rec := env.do(t, http.MethodGet, "/pair-status?code=RW-AB12-CD34", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"claimed":false}`, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/pair-claim",
		`{"code":"rw-ab12-cd34","identity":{"id":"999","displayName":"mate"},"guildId":"guild1","accountId":"`+testAccountID+`","extra":{"source":"test"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	claim := decode[pairsdk.ClaimResponse](t, rec)
	require.True(t, claim.OK)
	require.Equal(t, "RW-AB12-CD34", claim.Code)
	require.Equal(t, "guild1", claim.GuildID)
	require.Equal(t, env.clock.Now().UnixMilli(), claim.ClaimedAt)

	rec = env.do(t, http.MethodGet, "/pair-status?code=rw-ab12-cd34", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"claimed":true,"identity":{"id":"999","displayName":"mate"}}`, rec.Body.String())

	env.clock.Advance(memory.DefaultClaimTTL + time.Second)

	rec = env.do(t, http.MethodGet, "/pair-status?code=RW-AB12-CD34", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"claimed":false}`, rec.Body.String())
}

func TestPairClaimLegacyShape(t *testing.T) {
	env := newTestEnv(t, "signing-secret", "")

	rec := env.do(t, http.MethodPost, "/pair-claim",
		`{"pairCode":"RW-AB12-CD34","discord_user_id":"42","username":"legacy","guild_id":"g1","steamid":`+testAccountID+`}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/pair-status?code=RW-AB12-CD34", "")
	require.JSONEq(t, `{"claimed":true,"identity":{"id":"42","displayName":"legacy"}}`, rec.Body.String())
}

func TestPairClaimErrors(t *testing.T) {
	env := newTestEnv(t, "signing-secret", "")

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"bad code", `{"code":"RW-1234","identity":{"id":"1"},"guildId":"g"}`, pairsdk.ErrorCodeBadCodeFormat},
		{"missing code", `{"identity":{"id":"1"},"guildId":"g"}`, pairsdk.ErrorCodeBadCodeFormat},
		{"missing identity", `{"code":"RW-AB12-CD34","guildId":"g"}`, pairsdk.ErrorCodeMissingIdentity},
		{"missing guild", `{"code":"RW-AB12-CD34","identity":{"id":"1"}}`, pairsdk.ErrorCodeMissingGuildID},
		{"identity not object", `{"code":"RW-AB12-CD34","identity":"1","guildId":"g"}`, pairsdk.ErrorCodeInvalidRequest},
		{"not json", `{`, pairsdk.ErrorCodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/pair-claim", tt.body)
			requireError(t, rec, http.StatusBadRequest, tt.wantCode)
		})
	}
}

func TestPairClaimRequiresCallbackSecret(t *testing.T) {
	env := newTestEnv(t, "signing-secret", testSecret)
	body := `{"code":"RW-AB12-CD34","identity":{"id":"1"},"guildId":"g"}`

	rec := env.do(t, http.MethodPost, "/pair-claim", body)
	requireError(t, rec, http.StatusUnauthorized, pairsdk.ErrorCodeUnauthorized)

	rec = env.do(t, http.MethodPost, "/pair-claim", body, "Authorization", "Bearer wrong")
	requireError(t, rec, http.StatusUnauthorized, pairsdk.ErrorCodeUnauthorized)

	rec = env.do(t, http.MethodPost, "/pair-claim", body, "Authorization", "Bearer "+testSecret)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Polling stays public.
	rec = env.do(t, http.MethodGet, "/pair-status?code=RW-AB12-CD34", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestPairStatusMissingCode(t *testing.T) {
	env := newTestEnv(t, "signing-secret", "")

	for _, target := range []string{"/pair-status", "/pair-status?code=", "/pair-status?code=%20%20"} {
		rec := env.do(t, http.MethodGet, target, "")
		requireError(t, rec, http.StatusBadRequest, pairsdk.ErrorCodeMissingCode)
	}
}

func TestMethodNotAllowedIsNotCached(t *testing.T) {
	env := newTestEnv(t, "signing-secret", "")

	rec := env.do(t, http.MethodGet, "/token", "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestHealthEndpoints(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		env := newTestEnv(t, "signing-secret", "")

		rec := env.do(t, http.MethodGet, "/livez", "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "ok", decode[pairsdk.HealthResponse](t, rec).Status)

		rec = env.do(t, http.MethodGet, "/readyz", "")
		require.Equal(t, http.StatusOK, rec.Code)
		health := decode[pairsdk.HealthResponse](t, rec)
		require.Equal(t, "ok", health.Status)
		require.Equal(t, &pairsdk.HealthChecks{Store: "ok", Signer: "ok"}, health.Checks)
	})

	t.Run("no secret", func(t *testing.T) {
		env := newTestEnv(t, "", "")

		rec := env.do(t, http.MethodGet, "/livez", "")
		require.Equal(t, http.StatusOK, rec.Code)

		rec = env.do(t, http.MethodGet, "/readyz", "")
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		health := decode[pairsdk.HealthResponse](t, rec)
		require.Equal(t, "degraded", health.Status)
		require.Equal(t, "ok", health.Checks.Store)
		require.Contains(t, health.Checks.Signer, "error")
	})

	t.Run("store closed", func(t *testing.T) {
		env := newTestEnv(t, "signing-secret", "")
		require.NoError(t, env.store.Close())

		rec := env.do(t, http.MethodGet, "/readyz", "")
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		require.Contains(t, decode[pairsdk.HealthResponse](t, rec).Checks.Store, "error")
	})
}

func TestRequestIDIsEchoed(t *testing.T) {
	env := newTestEnv(t, "signing-secret", "")

	rec := env.do(t, http.MethodGet, "/livez", "", slogx.RequestIDHeader, "abc-123")
	require.Equal(t, "abc-123", rec.Header().Get(slogx.RequestIDHeader))
}

func TestSwaggerDocs(t *testing.T) {
	env := newTestEnv(t, "signing-secret", "")

	rec := env.do(t, http.MethodGet, "/swagger/doc.json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "/pair-claim")
	require.Contains(t, rec.Body.String(), "/token")
}
