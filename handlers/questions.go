// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/quickly-survey/apperr"
	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/store"
	"github.com/danielhkuo/quickly-survey/validation"
)

const msgQuestionNotFound = "Question not found"

type QuestionHandler struct {
	store *store.Store
}

func NewQuestionHandler(st *store.Store) *QuestionHandler {
	return &QuestionHandler{store: st}
}

// ListActive handles GET /question/
// Without ?id= it lists questions of active polls, optionally narrowed by
// ?poll=. With ?id= it returns that question with its answers.
func (h *QuestionHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	now := time.Now()

	if id := query.Get("id"); id != "" {
		h.detail(w, r, id, query.Get("poll"), now)
		return
	}

	questions, err := h.store.ListQuestions(r.Context(), store.QuestionFilter{
		PollID:   query.Get("poll"),
		ActiveAt: &now,
	})
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, questions)
}

// detail hides a question unless its poll is active at now and, when
// pollID is given, the question belongs to it. Hidden and absent
// questions get the same 404.
func (h *QuestionHandler) detail(w http.ResponseWriter, r *http.Request, id, pollID string, now time.Time) {
	question, err := h.store.GetQuestionDetail(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	if pollID != "" && pollID != question.Poll {
		middleware.WriteError(w, apperr.NotFound(msgQuestionNotFound))
		return
	}

	poll, err := h.store.GetPoll(r.Context(), question.Poll)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	if !poll.IsActive(now) {
		middleware.WriteError(w, apperr.NotFound(msgQuestionNotFound))
		return
	}

	middleware.JSONResponse(w, http.StatusOK, question)
}

// List handles GET /admin/question/
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	questions, err := h.store.ListQuestions(r.Context(), store.QuestionFilter{
		ID:     query.Get("id"),
		PollID: query.Get("poll"),
	})
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, questions)
}

// Create handles POST /admin/question/
func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateQuestionRequest
	if err := decodeRequest(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	// The parent poll must exist; an unknown id is a bad request, not a 404
	if _, err := h.store.GetPoll(r.Context(), req.Poll); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			err = apperr.ValidationFields(validation.MsgInvalidRequest, map[string]string{"poll": "Poll not found"})
		}
		middleware.WriteError(w, err)
		return
	}

	question, err := h.store.CreateQuestion(r.Context(), models.Question{
		Poll:  req.Poll,
		Text:  req.Text,
		QType: req.QType,
	})
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("question created", "question_id", question.ID, "poll_id", question.Poll, "qtype", question.QType.String())

	middleware.JSONResponse(w, http.StatusCreated, question)
}

// Get handles GET /admin/question/{id}
// Admins see the question regardless of its poll's window.
func (h *QuestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	question, err := h.store.GetQuestionDetail(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, question)
}

// Update handles PUT /admin/question/{id}
func (h *QuestionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateQuestionRequest
	if err := decodeRequest(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	question, err := h.store.GetQuestion(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	question.Text = req.Text
	question.QType = req.QType

	h.save(w, r, question)
}

// Patch handles PATCH /admin/question/{id}
func (h *QuestionHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var req models.PatchQuestionRequest
	if err := decodeRequest(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	question, err := h.store.GetQuestion(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	if req.Text != nil {
		question.Text = *req.Text
	}
	if req.QType != nil {
		question.QType = *req.QType
	}

	h.save(w, r, question)
}

func (h *QuestionHandler) save(w http.ResponseWriter, r *http.Request, question models.Question) {
	if err := h.store.UpdateQuestion(r.Context(), question); err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("question updated", "question_id", question.ID)

	middleware.JSONResponse(w, http.StatusOK, question)
}

// Delete handles DELETE /admin/question/{id}
func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if err := h.store.DeleteQuestion(r.Context(), questionID); err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("question deleted", "question_id", questionID)

	w.WriteHeader(http.StatusNoContent)
}
