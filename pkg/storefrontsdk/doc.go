// Package storefrontsdk holds the JSON wire types of the storefront API and a
// small cookie-carrying client for it.
//
// The server builds its responses from these types and the client decodes
// them, so both sides agree on field names by construction.
//
// Every response is an Envelope. Logical outcomes such as a wrong password
// are reported with HTTP 200 and success=false plus a machine readable error
// code; only malformed requests, missing sessions, throttling and internal
// failures use non-2xx statuses, and the client surfaces those as *APIError.
//
//	c := storefrontsdk.NewClient("http://localhost:8080")
//	res, err := c.Login(ctx, storefrontsdk.LoginRequest{Username: "alice", Password: "secret123"})
//	if err != nil {
//		// transport failure or *APIError
//	}
//	if res.RequireTwoFactor {
//		_, err = c.VerifyTwoFactor(ctx, storefrontsdk.TwoFactorCodeRequest{UserID: storefrontsdk.UserID(res.UserID), Code: code})
//	}
package storefrontsdk
