package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aussiebroadwan/pairlink/internal/pairlink/domain"
	"github.com/aussiebroadwan/pairlink/pkg/linktoken"
	"github.com/spf13/pflag"
)

func addSecretFlag(fs *pflag.FlagSet) *string {
	return fs.String("secret", "", "signing secret (default $LINK_SECRET)")
}

func newCodec(secret string, now func() time.Time) (*linktoken.Codec, error) {
	if secret == "" {
		secret = os.Getenv("LINK_SECRET")
	}
	if secret == "" {
		return nil, fmt.Errorf("%w: pass --secret or set LINK_SECRET", linktoken.ErrMissingSecret)
	}
	return linktoken.New([]byte(secret), linktoken.WithClock(now)), nil
}

// clock is swapped in tests.
var clock = time.Now

func runMint(args []string, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("mint", pflag.ContinueOnError)
	secret := addSecretFlag(fs)
	accountID := fs.StringP("account-id", "a", "", "17-digit account id (required)")
	nonce := fs.String("nonce", "", "optional nonce, at least 16 characters")
	ttl := fs.Duration("ttl", 0, "token lifetime, minimum 1m (default 10m)")
	asJSON := fs.Bool("json", false, "print token, ttlSeconds and expiresAt as JSON")

	if help, err := parseFlags(fs, args, stdout); help || err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	codec, err := newCodec(*secret, clock)
	if err != nil {
		return err
	}

	minted, err := codec.Mint(*accountID, *nonce, *ttl)
	if err != nil {
		return err
	}

	if *asJSON {
		return writeJSON(stdout, map[string]any{
			"token":      minted.Token,
			"ttlSeconds": int(minted.TTL / time.Second),
			"expiresAt":  minted.ExpiresAt.UnixMilli(),
		})
	}

	fmt.Fprintln(stdout, minted.Token)
	fmt.Fprintf(stderr, "expires %s (in %s)\n", minted.ExpiresAt.UTC().Format(time.RFC3339), minted.TTL)
	return nil
}

func runVerify(args []string, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("verify", pflag.ContinueOnError)
	secret := addSecretFlag(fs)

	if help, err := parseFlags(fs, args, stdout); help || err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("verify takes exactly one token")
	}

	codec, err := newCodec(*secret, clock)
	if err != nil {
		return err
	}

	payload, err := codec.Verify(fs.Arg(0))
	switch {
	case errors.Is(err, linktoken.ErrExpired):
		// Still useful to see whose token it was.
		_ = writeJSON(stdout, payload)
		return fmt.Errorf("token expired at %s", payload.ExpiryTime().UTC().Format(time.RFC3339))
	case err != nil:
		return err
	}

	return writeJSON(stdout, payload)
}

func runCode(args []string, stdout, _ io.Writer) error {
	fs := pflag.NewFlagSet("code", pflag.ContinueOnError)
	count := fs.IntP("count", "n", 1, "number of codes to generate")

	if help, err := parseFlags(fs, args, stdout); help || err != nil {
		return err
	}
	if *count < 1 {
		return errors.New("--count must be at least 1")
	}

	for range *count {
		fmt.Fprintln(stdout, domain.NewPairingCode())
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
