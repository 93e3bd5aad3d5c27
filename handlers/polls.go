// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/store"
	"github.com/danielhkuo/quickly-survey/validation"
)

type PollHandler struct {
	store *store.Store
}

func NewPollHandler(st *store.Store) *PollHandler {
	return &PollHandler{store: st}
}

// ListActive handles GET /poll/
// Only polls whose window contains the current time are returned.
func (h *PollHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	polls, err := h.store.ListPolls(r.Context(), store.PollFilter{
		ID:       r.URL.Query().Get("id"),
		ActiveAt: &now,
	})
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}

// List handles GET /admin/poll/
func (h *PollHandler) List(w http.ResponseWriter, r *http.Request) {
	polls, err := h.store.ListPolls(r.Context(), store.PollFilter{ID: r.URL.Query().Get("id")})
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}

// Create handles POST /admin/poll/
func (h *PollHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := decodeRequest(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	poll, err := h.store.CreatePoll(r.Context(), models.Poll{
		Title:       req.Title,
		StartDate:   req.StartDate,
		FinishDate:  req.FinishDate,
		Description: req.Description,
	})
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("poll created", "poll_id", poll.ID, "start_date", poll.StartDate, "finish_date", poll.FinishDate)

	middleware.JSONResponse(w, http.StatusCreated, poll)
}

// Get handles GET /admin/poll/{id}
func (h *PollHandler) Get(w http.ResponseWriter, r *http.Request) {
	poll, err := h.store.GetPoll(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// Update handles PUT /admin/poll/{id}
// start_date is not part of the update view; finish_date is checked
// against the stored start_date.
func (h *PollHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdatePollRequest
	if err := decodeRequest(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	poll, err := h.store.GetPoll(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	poll.Title = req.Title
	poll.FinishDate = req.FinishDate
	poll.Description = req.Description

	h.save(w, r, poll)
}

// Patch handles PATCH /admin/poll/{id}
func (h *PollHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var req models.PatchPollRequest
	if err := decodeRequest(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	poll, err := h.store.GetPoll(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	if req.Title != nil {
		poll.Title = *req.Title
	}
	if req.FinishDate != nil {
		poll.FinishDate = *req.FinishDate
	}
	if req.Description != nil {
		poll.Description = *req.Description
	}

	h.save(w, r, poll)
}

func (h *PollHandler) save(w http.ResponseWriter, r *http.Request, poll models.Poll) {
	if err := validation.CheckWindow(poll.StartDate, poll.FinishDate); err != nil {
		middleware.WriteError(w, err)
		return
	}

	if err := h.store.UpdatePoll(r.Context(), poll); err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("poll updated", "poll_id", poll.ID)

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// Delete handles DELETE /admin/poll/{id}
// Questions, answers and submissions go with the poll.
func (h *PollHandler) Delete(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if err := h.store.DeletePoll(r.Context(), pollID); err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("poll deleted", "poll_id", pollID)

	w.WriteHeader(http.StatusNoContent)
}
