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

type PollingHandler struct {
	store *store.Store
}

func NewPollingHandler(st *store.Store) *PollingHandler {
	return &PollingHandler{store: st}
}

// Submit handles POST /polling/
// The submitter is always the authenticated caller; the body only names
// the question and carries either typed_answer or selected_answers.
func (h *PollingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	var req models.SubmitAnswerRequest
	if err := decodeRequest(r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	target, err := h.target(r, req.Question)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	payload, err := validation.Submission(target, req)
	if err != nil {
		slog.Info("submission rejected",
			"account_id", id.AccountID,
			"question_id", req.Question,
			"error", err,
		)
		middleware.WriteError(w, err)
		return
	}

	answer, err := h.store.CreateUserAnswer(r.Context(), id.AccountID, req.Question, payload)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("answer submitted",
		"user_answer_id", answer.ID,
		"account_id", id.AccountID,
		"question_id", answer.Question,
	)

	middleware.JSONResponse(w, http.StatusCreated, answer)
}

// target loads what validation needs to know about the question
func (h *PollingHandler) target(r *http.Request, questionID string) (validation.Target, error) {
	question, err := h.store.GetQuestion(r.Context(), questionID)
	if errors.Is(err, apperr.ErrNotFound) {
		return validation.Target{}, apperr.ValidationFields(validation.MsgInvalidRequest, map[string]string{
			"question": validation.MsgQuestionAbsent,
		})
	}
	if err != nil {
		return validation.Target{}, err
	}

	poll, err := h.store.GetPoll(r.Context(), question.Poll)
	if err != nil {
		return validation.Target{}, err
	}

	target := validation.Target{
		Question:   question,
		PollActive: poll.IsActive(time.Now()),
	}
	if question.QType.IsChoice() {
		target.OptionIDs, err = h.store.AnswerIDs(r.Context(), question.ID)
		if err != nil {
			return validation.Target{}, err
		}
	}
	return target, nil
}
