package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/pairlink/pkg/cryptox"
	"github.com/aussiebroadwan/pairlink/pkg/pairsdk"
	"github.com/aussiebroadwan/pairlink/pkg/slogx"
)

// BearerToken returns the credential of an "Authorization: Bearer ..." header,
// or "" when the header is missing or uses another scheme.
func BearerToken(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	scheme, cred, ok := strings.Cut(authz, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(cred)
}

// RequireSharedSecret only lets requests through whose bearer token equals
// secret. An empty secret disables the check, which keeps the callback open
// for deployments that have not set one.
func RequireSharedSecret(secret string) Middleware {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cryptox.EqualSecret(BearerToken(r), secret) {
				slogx.FromContext(r.Context()).Warn("shared secret mismatch")
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				WriteError(w, http.StatusUnauthorized, pairsdk.ErrorCodeUnauthorized, "")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
