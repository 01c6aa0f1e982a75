package linktoken

import "errors"

var (
	ErrInvalidAccountID = errors.New("linktoken: invalid account id")
	ErrInvalidNonce     = errors.New("linktoken: nonce too short")

	// ErrMissingSecret is a deployment defect, not a bad request.
	ErrMissingSecret = errors.New("linktoken: signing secret not configured")

	ErrBadSignature       = errors.New("linktoken: bad signature")
	ErrMalformedPayload   = errors.New("linktoken: malformed payload")
	ErrUnsupportedVersion = errors.New("linktoken: unsupported payload version")
	ErrExpired            = errors.New("linktoken: token expired")
)

// IsValidationError reports whether err came from rejecting Mint input.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidAccountID) || errors.Is(err, ErrInvalidNonce)
}

// IsRejection reports whether err means the token itself cannot be trusted.
// Callers must answer all of these the same way so a client cannot tell a
// forged signature from a payload that failed to decode.
func IsRejection(err error) bool {
	return errors.Is(err, ErrBadSignature) ||
		errors.Is(err, ErrMalformedPayload) ||
		errors.Is(err, ErrUnsupportedVersion)
}
