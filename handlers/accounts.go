// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-survey/apperr"
	"github.com/danielhkuo/quickly-survey/auth"
	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/store"
	"github.com/danielhkuo/quickly-survey/validation"
)

const msgBadCredentials = "Unable to log in with provided credentials"

type AuthHandler struct {
	store  *store.Store
	issuer *auth.TokenIssuer
}

func NewAuthHandler(st *store.Store, issuer *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{store: st, issuer: issuer}
}

// Login handles POST /auth/login/
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeRequest(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	account, err := h.store.GetAccountByUsername(r.Context(), req.Username)
	if errors.Is(err, apperr.ErrNotFound) {
		// Unknown usernames get the wrong-password response
		middleware.WriteError(w, apperr.Unauthenticated(msgBadCredentials))
		return
	}
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	if err := auth.CheckPassword(account.PasswordHash, req.Password); err != nil {
		slog.Warn("login failed", "username", req.Username, "remote", middleware.GetClientIP(r))
		middleware.WriteError(w, apperr.Unauthenticated(msgBadCredentials))
		return
	}

	token, claims, err := h.issuer.Issue(account.ID, account.Role)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("login", "account_id", account.ID, "role", account.Role)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
	})
}

// Logout handles POST /auth/logout/
// The presented token stays rejected until it would have expired.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	if err := h.store.RevokeToken(r.Context(), id.TokenID, id.TokenExpiresAt); err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("logout", "account_id", id.AccountID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Successfully logged out."})
}

// Me handles GET /auth/user/
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	account, err := h.store.GetAccount(r.Context(), id.AccountID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, account)
}

// ChangePassword handles POST /auth/password/change/
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	var req models.ChangePasswordRequest
	if err := decodeRequest(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	account, err := h.store.GetAccount(r.Context(), id.AccountID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	if err := auth.CheckPassword(account.PasswordHash, req.OldPassword); err != nil {
		middleware.WriteError(w, apperr.ValidationFields(validation.MsgInvalidRequest, map[string]string{
			"old_password": "Your old password was entered incorrectly.",
		}))
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	if err := h.store.UpdatePassword(r.Context(), account.ID, hash); err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("password changed", "account_id", account.ID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "New password has been saved."})
}

// CreateAccount handles POST /admin/user/
func (h *AuthHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAccountRequest
	if err := decodeRequest(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	account, err := h.store.CreateAccount(r.Context(), req.Username, hash, req.Role)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("account created", "account_id", account.ID, "role", account.Role)

	middleware.JSONResponse(w, http.StatusCreated, account)
}
