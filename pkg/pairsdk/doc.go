/*
Package pairsdk provides a client SDK for the pairlink service.

# Overview

Pairing links an account (a 17-digit account id) to a chat identity. Three
parties take part and each uses a different part of this SDK:

  - The web front end mints a token and then polls for the claim.
  - The bot verifies the token and reports the claim once the user paired.
  - Operators check liveness and readiness.

Front end:

	client := pairsdk.NewSDKClient("https://pair.example.com")

	tok, err := client.MintToken(ctx, pairsdk.TokenRequest{
		AccountID: "76561198000000001",
		Nonce:     sessionNonce,
	})

	// hand tok.Token and a pairing code to the user, then wait
	status, err := client.WaitForClaim(ctx, code, 2*time.Second)
	fmt.Println("paired with", status.Identity.ID)

Bot:

	client := pairsdk.NewSDKClient("https://pair.example.com")
	client.CallbackSecret = os.Getenv("PAIR_CALLBACK_AUTH")

	payload, err := client.VerifyToken(ctx, token)
	if pairsdk.IsErrorCode(err, pairsdk.ErrorCodeExpiredToken) {
		// ask the user to start over
	}

	_, err = client.ClaimPairing(ctx, pairsdk.ClaimRequest{
		Code:     code,
		Identity: pairsdk.Identity{ID: userID},
		GuildID:  guildID,
	})

# Error Handling

Every non-2xx response is returned as an *APIError carrying the HTTP status
and one of the ErrorCode constants. Transport failures are returned as
wrapped errors from net/http.
*/
package pairsdk
