package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/pairlink/internal/pairlink/service"
	"github.com/aussiebroadwan/pairlink/pkg/httpx"
	"github.com/aussiebroadwan/pairlink/pkg/linktoken"
	"github.com/aussiebroadwan/pairlink/pkg/pairsdk"
	"github.com/aussiebroadwan/pairlink/pkg/slogx"
)

type VerifyHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Verify Pairing Token
//	@Description	Check a pairing token's signature, version and expiry and return its payload.
//	@Description	A forged, corrupted or unsupported token always answers invalid_token.
//	@Tags			Tokens
//	@Accept			json
//	@Produce		json
//	@Param			request	body		pairsdk.VerifyRequest	true	"Token to verify"
//	@Success		200		{object}	pairsdk.VerifyResponse	"accountId, nonce, issuedAt, expiresAt"
//	@Failure		400		{object}	pairsdk.ErrorResponse	"invalid_token, expired_token or invalid_request"
//	@Failure		500		{object}	pairsdk.ErrorResponse	"no_secret"
//	@Router			/verify [post].
func (h *VerifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	b, err := readBody(w, r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, pairsdk.ErrorCodeInvalidRequest, errInvalidBody.Error())
		return
	}

	token, err := b.text("token")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, pairsdk.ErrorCodeInvalidRequest, "token must be a string")
		return
	}

	payload, err := h.TokenService.Verify(ctx, token)
	if err != nil {
		switch {
		case errors.Is(err, linktoken.ErrMissingSecret):
			httpx.WriteError(w, http.StatusInternalServerError, pairsdk.ErrorCodeNoSecret, "")
		case errors.Is(err, linktoken.ErrExpired):
			httpx.WriteError(w, http.StatusBadRequest, pairsdk.ErrorCodeExpiredToken, "")
		case linktoken.IsRejection(err):
			httpx.WriteError(w, http.StatusBadRequest, pairsdk.ErrorCodeInvalidToken, "")
		default:
			log.Error("failed to verify token", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, pairsdk.ErrorCodeServerError, "")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, pairsdk.VerifyResponse{
		OK:        true,
		AccountID: payload.AccountID,
		Nonce:     payload.Nonce,
		IssuedAt:  payload.IssuedAt,
		ExpiresAt: payload.ExpiresAt,
	})
}
