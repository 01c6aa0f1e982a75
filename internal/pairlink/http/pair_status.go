package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/pairlink/internal/pairlink/service"
	"github.com/aussiebroadwan/pairlink/pkg/httpx"
	"github.com/aussiebroadwan/pairlink/pkg/pairsdk"
	"github.com/aussiebroadwan/pairlink/pkg/slogx"
)

type PairStatusHandler struct {
	PairingService *service.PairingService
}

// ServeHTTP godoc
//
//	@Summary		Pairing Status
//	@Description	Polled by the front end until the code is claimed. Unknown and expired codes answer claimed=false.
//	@Tags			Pairing
//	@Produce		json
//	@Param			code	query		string						true	"Pairing code (case-insensitive)"
//	@Success		200		{object}	pairsdk.PairStatusResponse	"claimed, identity"
//	@Failure		400		{object}	pairsdk.ErrorResponse		"missing_code"
//	@Router			/pair-status [get].
func (h *PairStatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status, err := h.PairingService.QueryClaim(ctx, r.URL.Query().Get("code"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCode):
			httpx.WriteError(w, http.StatusBadRequest, pairsdk.ErrorCodeMissingCode, "code query parameter is required")
		default:
			slogx.FromContext(ctx).Error("failed to query claim", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, pairsdk.ErrorCodeServerError, "")
		}
		return
	}

	resp := pairsdk.PairStatusResponse{Claimed: status.Claimed}
	if status.Identity != nil {
		resp.Identity = &pairsdk.Identity{
			ID:          status.Identity.ID,
			DisplayName: status.Identity.DisplayName,
		}
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
