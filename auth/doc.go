// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth verifies bearer tokens issued by the external identity provider.

# Tokens

Tokens are HS256 JWTs signed with the shared JWT_SECRET. The standard
"sub" claim carries the user ID; "exp" and "nbf" are honoured with a
small leeway.

	v := auth.NewVerifier(cfg.JWTSecret)
	userID, err := v.UserID(r)

Verify rejects tokens signed with any other algorithm, including "none".

# Sessions

The service never issues tokens. IsAuthenticated answers whether a request
carries a currently valid one:

	if !v.IsAuthenticated(r) {
		// 401
	}
*/
package auth
