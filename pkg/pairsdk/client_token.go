package pairsdk

import (
	"context"
	"net/http"
)

// MintToken requests a signed pairing token.
func (c *SDKClient) MintToken(ctx context.Context, req TokenRequest) (*TokenResponse, error) {
	resp, err := c.postJSON(ctx, "/token", req, nil)
	if err != nil {
		return nil, err
	}

	var tokenResp TokenResponse
	if err := decodeJSON(resp, &tokenResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &tokenResp, nil
}

// VerifyToken asks the service to check token. Invalid and expired tokens
// come back as an *APIError with ErrorCodeInvalidToken or
// ErrorCodeExpiredToken.
func (c *SDKClient) VerifyToken(ctx context.Context, token string) (*VerifyResponse, error) {
	resp, err := c.postJSON(ctx, "/verify", VerifyRequest{Token: token}, nil)
	if err != nil {
		return nil, err
	}

	var verifyResp VerifyResponse
	if err := decodeJSON(resp, &verifyResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &verifyResp, nil
}
