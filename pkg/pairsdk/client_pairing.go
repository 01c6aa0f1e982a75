package pairsdk

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// DefaultPollInterval is used by WaitForClaim when interval is not positive.
const DefaultPollInterval = 2 * time.Second

// ClaimPairing records that req.Identity claimed req.Code. It is called by
// the bot after a successful pairing.
func (c *SDKClient) ClaimPairing(ctx context.Context, req ClaimRequest) (*ClaimResponse, error) {
	var headers map[string]string
	if c.CallbackSecret != "" {
		headers = map[string]string{"Authorization": "Bearer " + c.CallbackSecret}
	}

	resp, err := c.postJSON(ctx, "/pair-claim", req, headers)
	if err != nil {
		return nil, err
	}

	var claimResp ClaimResponse
	if err := decodeJSON(resp, &claimResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &claimResp, nil
}

// GetPairStatus reports whether code has been claimed.
func (c *SDKClient) GetPairStatus(ctx context.Context, code string) (*PairStatusResponse, error) {
	path := "/pair-status?" + url.Values{"code": {code}}.Encode()

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var status PairStatusResponse
	if err := decodeJSON(resp, &status, http.StatusOK); err != nil {
		return nil, err
	}

	return &status, nil
}

// WaitForClaim polls GetPairStatus until code is claimed or ctx is done.
// Request errors end the wait immediately.
func (c *SDKClient) WaitForClaim(ctx context.Context, code string, interval time.Duration) (*PairStatusResponse, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		status, err := c.GetPairStatus(ctx, code)
		if err != nil {
			return nil, err
		}
		if status.Claimed {
			return status, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
