package pairsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned in ErrorResponse.Error.
const (
	ErrorCodeInvalidRequest  = "invalid_request"
	ErrorCodeBadAccountID    = "bad_account_id"
	ErrorCodeBadNonce        = "bad_nonce"
	ErrorCodeNoSecret        = "no_secret"
	ErrorCodeInvalidToken    = "invalid_token"
	ErrorCodeExpiredToken    = "expired_token"
	ErrorCodeBadCodeFormat   = "bad_code_format"
	ErrorCodeMissingIdentity = "missing_identity"
	ErrorCodeMissingGuildID  = "missing_guild_id"
	ErrorCodeMissingCode     = "missing_code"
	ErrorCodeUnauthorized    = "unauthorized"
	ErrorCodeServerError     = "server_error"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	// StatusCode is the HTTP status code of the response
	StatusCode int

	// Code is the error code (one of the ErrorCode constants)
	Code string

	// Description is a human-readable description, possibly empty
	Description string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("pairlink: %d %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("pairlink: %d %s: %s", e.StatusCode, e.Code, e.Description)
}

// IsErrorCode reports whether err is an APIError carrying code.
func IsErrorCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// parseErrorResponse converts an error response into an *APIError. Bodies
// that are not in the ErrorResponse shape become a server_error carrying the
// status text.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
