package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/pairlink/internal/pairlink/domain"
	"github.com/aussiebroadwan/pairlink/internal/pairlink/store"
	"github.com/aussiebroadwan/pairlink/pkg/slogx"
)

var (
	ErrBadCodeFormat   = errors.New("pairing code is not in RW-XXXX-XXXX form")
	ErrMissingIdentity = errors.New("claiming identity id is required")
	ErrMissingGuild    = errors.New("guild id is required")
	ErrMissingCode     = errors.New("pairing code is required")
)

// ClaimInput is what the bot reports after a successful pairing.
type ClaimInput struct {
	Code      string
	Identity  domain.Identity
	GuildID   string
	AccountID string
	Extra     json.RawMessage
}

// PairingService records and answers pairing claims on top of the claim
// store.
type PairingService struct {
	Store store.Store
}

// RecordClaim validates in and stores it as the claim for its code. A later
// claim for the same code replaces this one.
func (s *PairingService) RecordClaim(ctx context.Context, in ClaimInput) (domain.ClaimRecord, error) {
	log := slogx.FromContext(ctx)

	code := domain.NormalizePairingCode(in.Code)
	if !domain.ValidPairingCode(code) {
		return domain.ClaimRecord{}, ErrBadCodeFormat
	}

	identity := domain.Identity{
		ID:          strings.TrimSpace(in.Identity.ID),
		DisplayName: strings.TrimSpace(in.Identity.DisplayName),
	}
	if identity.ID == "" {
		return domain.ClaimRecord{}, ErrMissingIdentity
	}

	guildID := strings.TrimSpace(in.GuildID)
	if guildID == "" {
		return domain.ClaimRecord{}, ErrMissingGuild
	}

	rec, err := s.Store.Claims().PutClaim(ctx, domain.ClaimRecord{
		Code:      code,
		Identity:  identity,
		GuildID:   guildID,
		AccountID: strings.TrimSpace(in.AccountID),
		Extra:     in.Extra,
	})
	if err != nil {
		log.Error("failed to store pairing claim", slog.String("code", code), slog.Any("err", err))
		return domain.ClaimRecord{}, err
	}

	log.Info("pairing code claimed",
		slog.String("claim_id", rec.ID),
		slog.String("code", rec.Code),
		slog.String("identity_id", rec.Identity.ID),
		slog.String("guild_id", rec.GuildID),
		slog.String("account_id", rec.AccountID),
	)
	return rec, nil
}

// QueryClaim reports whether code has a live claim. Unknown and expired codes
// both answer Claimed=false.
func (s *PairingService) QueryClaim(ctx context.Context, code string) (domain.ClaimStatus, error) {
	code = domain.NormalizePairingCode(code)
	if code == "" {
		return domain.ClaimStatus{}, ErrMissingCode
	}

	rec, err := s.Store.Claims().GetClaim(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.ClaimStatus{Claimed: false}, nil
		}
		slogx.FromContext(ctx).Error("failed to read pairing claim", slog.String("code", code), slog.Any("err", err))
		return domain.ClaimStatus{}, err
	}

	identity := rec.Identity
	return domain.ClaimStatus{Claimed: true, Identity: &identity}, nil
}
