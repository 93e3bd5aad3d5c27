// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/quickly-survey/access"
	"github.com/danielhkuo/quickly-survey/cliparse"
	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/store"
)

type ResultsHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewResultsHandler(st *store.Store, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{store: st, cfg: cfg}
}

// List handles GET /results/
// Returns the polls the caller has answered. With ResultsOwnOnly set,
// callers without results:read_all only see their own submissions.
func (h *ResultsHandler) List(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	ownOnly := h.cfg.ResultsOwnOnly && !id.Can(access.ReadAllResults)
	polls, err := h.store.PassedPolls(r.Context(), id.AccountID, ownOnly)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}
