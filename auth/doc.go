// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credential and token utilities.

# Passwords

Passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword("correct horse")
	err = auth.CheckPassword(hash, candidate) // ErrInvalidPassword on mismatch

# Access Tokens

Access tokens are HS256 JWTs signed with the configured secret:

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	token, claims, err := issuer.Issue(accountID, role)
	claims, err = issuer.Parse(token)

Claims carry the account ID (sub), role, expiry (exp) and a UUID token ID
(jti). Logging out records the jti as revoked until the token expires.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
