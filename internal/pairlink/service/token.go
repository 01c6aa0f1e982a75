package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/pairlink/pkg/cryptox"
	"github.com/aussiebroadwan/pairlink/pkg/linktoken"
	"github.com/aussiebroadwan/pairlink/pkg/slogx"
)

// TokenService issues and checks pairing tokens. It adds logging with the
// right severity on top of the codec; the codec decides validity.
type TokenService struct {
	Codec *linktoken.Codec
}

// Mint issues a token for accountID. ttl of zero means the codec default.
func (s *TokenService) Mint(ctx context.Context, accountID, nonce string, ttl time.Duration) (linktoken.Minted, error) {
	log := slogx.FromContext(ctx)

	minted, err := s.Codec.Mint(accountID, nonce, ttl)
	if err != nil {
		switch {
		case errors.Is(err, linktoken.ErrMissingSecret):
			log.Error("cannot mint pairing token: signing secret not configured")
		case linktoken.IsValidationError(err):
			log.Debug("rejected mint request", slog.Any("err", err))
		default:
			log.Error("failed to mint pairing token", slog.Any("err", err))
		}
		return linktoken.Minted{}, err
	}

	log.Debug("pairing token minted",
		slog.String("account_id", accountID),
		slog.Bool("has_nonce", nonce != ""),
		slog.Duration("ttl", minted.TTL),
		slog.String("token_fp", cryptox.ShortFingerprint(minted.Token)),
	)
	return minted, nil
}

// Verify checks token and returns its payload.
func (s *TokenService) Verify(ctx context.Context, token string) (linktoken.Payload, error) {
	log := slogx.FromContext(ctx)

	payload, err := s.Codec.Verify(token)
	if err != nil {
		switch {
		case errors.Is(err, linktoken.ErrMissingSecret):
			log.Error("cannot verify pairing token: signing secret not configured")
		case errors.Is(err, linktoken.ErrExpired):
			log.Debug("pairing token expired", slog.String("account_id", payload.AccountID))
		default:
			// Only the fingerprint; the token itself stays out of the logs.
			log.Warn("pairing token rejected",
				slog.Any("err", err),
				slog.String("token_fp", cryptox.ShortFingerprint(token)),
			)
		}
		return linktoken.Payload{}, err
	}

	return payload, nil
}

// Ready reports whether tokens can be minted at all.
func (s *TokenService) Ready() bool {
	return s.Codec != nil && s.Codec.Configured()
}
