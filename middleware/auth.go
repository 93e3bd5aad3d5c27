// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/quickly-survey/access"
	"github.com/danielhkuo/quickly-survey/apperr"
	"github.com/danielhkuo/quickly-survey/auth"
	"github.com/danielhkuo/quickly-survey/models"
)

// AccountSource resolves the account behind a token and tells whether the
// token was logged out.
type AccountSource interface {
	GetAccount(ctx context.Context, id string) (models.Account, error)
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Authenticator turns bearer tokens into request identities
type Authenticator struct {
	issuer   *auth.TokenIssuer
	accounts AccountSource
}

func NewAuthenticator(issuer *auth.TokenIssuer, accounts AccountSource) *Authenticator {
	return &Authenticator{issuer: issuer, accounts: accounts}
}

// Require runs next only for callers holding capability c. The identity is
// stored in the request context for next to read with access.FromContext.
func (a *Authenticator) Require(c access.Capability, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := a.identify(r)
		if err != nil {
			WriteError(w, err)
			return
		}

		if !id.Can(c) {
			slog.Warn("capability denied",
				"account_id", id.AccountID,
				"role", id.Role,
				"capability", c,
			)
			WriteError(w, apperr.Forbidden("You do not have permission to perform this action"))
			return
		}

		next(w, r.WithContext(access.WithIdentity(r.Context(), id)))
	}
}

func (a *Authenticator) identify(r *http.Request) (access.Identity, error) {
	token, ok := bearerToken(r)
	if !ok {
		return access.Identity{}, apperr.Unauthenticated("Authentication credentials were not provided")
	}

	claims, err := a.issuer.Parse(token)
	if err != nil {
		return access.Identity{}, apperr.Unauthenticated("Invalid or expired token")
	}

	revoked, err := a.accounts.IsTokenRevoked(r.Context(), claims.ID)
	if err != nil {
		return access.Identity{}, err
	}
	if revoked {
		return access.Identity{}, apperr.Unauthenticated("Invalid or expired token")
	}

	account, err := a.accounts.GetAccount(r.Context(), claims.Subject)
	if errors.Is(err, apperr.ErrNotFound) {
		return access.Identity{}, apperr.Unauthenticated("Invalid or expired token")
	}
	if err != nil {
		return access.Identity{}, err
	}

	id := access.NewIdentity(account, claims.ID)
	id.TokenExpiresAt = claims.ExpiresAt.Time
	return id, nil
}

// bearerToken extracts the token from "Authorization: Bearer <token>"
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
