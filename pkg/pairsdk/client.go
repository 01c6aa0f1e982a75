package pairsdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the pairlink service.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// CallbackSecret is sent as a bearer token on ClaimPairing. Leave empty
	// when the service runs without PAIR_CALLBACK_AUTH.
	CallbackSecret string
}

// NewSDKClient creates a new pairlink client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}
