package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/pairlink/internal/pairlink/domain"
	"github.com/aussiebroadwan/pairlink/internal/pairlink/service"
	"github.com/aussiebroadwan/pairlink/pkg/httpx"
	"github.com/aussiebroadwan/pairlink/pkg/pairsdk"
	"github.com/aussiebroadwan/pairlink/pkg/slogx"
)

type PairClaimHandler struct {
	PairingService *service.PairingService
}

// ServeHTTP godoc
//
//	@Summary		Record Pairing Claim
//	@Description	Called by the bot once a chat user has claimed a pairing code. A later claim for the same code replaces the earlier one.
//	@Description	Requires "Authorization: Bearer {secret}" when the service is configured with a callback secret.
//	@Tags			Pairing
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		pairsdk.ClaimRequest	true	"Pairing code, claiming identity and guild"
//	@Success		200		{object}	pairsdk.ClaimResponse	"code, guildId, claimedAt"
//	@Failure		400		{object}	pairsdk.ErrorResponse	"bad_code_format, missing_identity, missing_guild_id or invalid_request"
//	@Failure		401		{object}	pairsdk.ErrorResponse	"unauthorized"
//	@Router			/pair-claim [post].
func (h *PairClaimHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	in, err := parseClaim(w, r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, pairsdk.ErrorCodeInvalidRequest, err.Error())
		return
	}

	rec, err := h.PairingService.RecordClaim(ctx, in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadCodeFormat):
			httpx.WriteError(w, http.StatusBadRequest, pairsdk.ErrorCodeBadCodeFormat, "code must look like RW-XXXX-XXXX")
		case errors.Is(err, service.ErrMissingIdentity):
			httpx.WriteError(w, http.StatusBadRequest, pairsdk.ErrorCodeMissingIdentity, "identity.id is required")
		case errors.Is(err, service.ErrMissingGuild):
			httpx.WriteError(w, http.StatusBadRequest, pairsdk.ErrorCodeMissingGuildID, "guildId is required")
		default:
			log.Error("failed to record claim", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, pairsdk.ErrorCodeServerError, "")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, pairsdk.ClaimResponse{
		OK:        true,
		Code:      rec.Code,
		GuildID:   rec.GuildID,
		ClaimedAt: rec.CreatedAt.UnixMilli(),
	})
}

// parseClaim maps the canonical body and the bot's legacy flat shape
// ({pairCode, discord_user_id, guild_id, steamid}) onto one ClaimInput.
func parseClaim(w http.ResponseWriter, r *http.Request) (service.ClaimInput, error) {
	b, err := readBody(w, r)
	if err != nil {
		return service.ClaimInput{}, errInvalidBody
	}

	code, err := b.text("code", "pairCode", "pair_code")
	if err != nil {
		return service.ClaimInput{}, err
	}

	ident, err := b.object("identity")
	if err != nil {
		return service.ClaimInput{}, err
	}

	identityID, err := ident.text("id")
	if err != nil {
		return service.ClaimInput{}, err
	}
	if identityID == "" {
		if identityID, err = b.text("discord_user_id", "discordUserId", "userId"); err != nil {
			return service.ClaimInput{}, err
		}
	}

	displayName, err := ident.text("displayName", "display_name", "username")
	if err != nil {
		return service.ClaimInput{}, err
	}
	if displayName == "" {
		if displayName, err = b.text("display_name", "username"); err != nil {
			return service.ClaimInput{}, err
		}
	}

	guildID, err := b.text("guildId", "guild_id")
	if err != nil {
		return service.ClaimInput{}, err
	}

	accountID, err := b.text("accountId", "account_id", "steamid", "steamId")
	if err != nil {
		return service.ClaimInput{}, err
	}

	return service.ClaimInput{
		Code:      code,
		Identity:  domain.Identity{ID: identityID, DisplayName: displayName},
		GuildID:   guildID,
		AccountID: accountID,
		Extra:     b.raw("extra"),
	}, nil
}
