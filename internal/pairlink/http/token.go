package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/pairlink/internal/pairlink/service"
	"github.com/aussiebroadwan/pairlink/pkg/httpx"
	"github.com/aussiebroadwan/pairlink/pkg/linktoken"
	"github.com/aussiebroadwan/pairlink/pkg/pairsdk"
	"github.com/aussiebroadwan/pairlink/pkg/slogx"
)

type TokenHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Mint Pairing Token
//	@Description	Mint a signed, expiring pairing token for an account id.
//	@Description	The account id may also be sent as account_id, steamid, steamId or steam_id, the nonce as token, and ttlSeconds as ttl_seconds.
//	@Tags			Tokens
//	@Accept			json
//	@Produce		json
//	@Param			request	body		pairsdk.TokenRequest	true	"Account id, optional nonce and ttl"
//	@Success		200		{object}	pairsdk.TokenResponse	"token, ttlSeconds, expiresAt"
//	@Failure		400		{object}	pairsdk.ErrorResponse	"bad_account_id, bad_nonce or invalid_request"
//	@Failure		500		{object}	pairsdk.ErrorResponse	"no_secret"
//	@Router			/token [post].
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	b, err := readBody(w, r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, pairsdk.ErrorCodeInvalidRequest, errInvalidBody.Error())
		return
	}

	accountID, err := b.text("accountId", "account_id", "steamid", "steamId", "steam_id")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, pairsdk.ErrorCodeBadAccountID, "accountId must be a 17-digit string")
		return
	}

	nonce, err := b.text("nonce", "token")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, pairsdk.ErrorCodeBadNonce, "nonce must be a string")
		return
	}

	ttl, hasTTL, err := b.seconds("ttlSeconds", "ttl_seconds")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, pairsdk.ErrorCodeInvalidRequest, err.Error())
		return
	}
	// Only an absent ttl means the default; an explicit 0 is clamped like
	// any other short ttl.
	if hasTTL && ttl < linktoken.MinTTL {
		ttl = linktoken.MinTTL
	}

	minted, err := h.TokenService.Mint(ctx, strings.TrimSpace(accountID), nonce, ttl)
	if err != nil {
		switch {
		case errors.Is(err, linktoken.ErrInvalidAccountID):
			httpx.WriteError(w, http.StatusBadRequest, pairsdk.ErrorCodeBadAccountID, "accountId must be a 17-digit string")
		case errors.Is(err, linktoken.ErrInvalidNonce):
			httpx.WriteError(w, http.StatusBadRequest, pairsdk.ErrorCodeBadNonce, "nonce must be at least 16 characters")
		case errors.Is(err, linktoken.ErrMissingSecret):
			httpx.WriteError(w, http.StatusInternalServerError, pairsdk.ErrorCodeNoSecret, "")
		default:
			log.Error("failed to mint token", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, pairsdk.ErrorCodeServerError, "")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, pairsdk.TokenResponse{
		OK:         true,
		Token:      minted.Token,
		TTLSeconds: int(minted.TTL / time.Second),
		ExpiresAt:  minted.ExpiresAt.UnixMilli(),
	})
}
