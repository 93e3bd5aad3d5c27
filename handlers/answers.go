// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-survey/apperr"
	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/store"
	"github.com/danielhkuo/quickly-survey/validation"
)

type AnswerHandler struct {
	store *store.Store
}

func NewAnswerHandler(st *store.Store) *AnswerHandler {
	return &AnswerHandler{store: st}
}

// List handles GET /answer/
func (h *AnswerHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	answers, err := h.store.ListAnswers(r.Context(), store.AnswerFilter{
		ID:         query.Get("id"),
		QuestionID: query.Get("question"),
	})
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, answers)
}

// Create handles POST /answer/
func (h *AnswerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAnswerRequest
	if err := decodeRequest(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	if _, err := h.store.GetQuestion(r.Context(), req.Question); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			err = apperr.ValidationFields(validation.MsgInvalidRequest, map[string]string{
				"question": validation.MsgQuestionAbsent,
			})
		}
		middleware.WriteError(w, err)
		return
	}

	answer, err := h.store.CreateAnswer(r.Context(), models.Answer{
		Question: req.Question,
		Text:     req.Text,
	})
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("answer created", "answer_id", answer.ID, "question_id", answer.Question)

	middleware.JSONResponse(w, http.StatusCreated, answer)
}
