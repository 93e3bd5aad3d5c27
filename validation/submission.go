// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validation

import (
	"github.com/danielhkuo/quickly-survey/apperr"
	"github.com/danielhkuo/quickly-survey/models"
)

const (
	MsgInactivePoll   = "You cannot answer an inactive poll"
	MsgTextAnswer     = "Text type answer for this question"
	MsgChoiceAnswer   = "Choice answer from list for this question"
	MsgOneOption      = "Choose exactly one answer for this question"
	MsgForeignAnswer  = "Selected answer does not belong to this question"
	MsgUnknownQType   = "Unknown question type"
	MsgQuestionAbsent = "Question not found"
)

// Payload is a validated submission body. It is either a TextPayload or a
// ChoicePayload; no other implementations exist.
type Payload interface {
	payload()
}

// TextPayload answers a TEXT question
type TextPayload struct {
	Text string
}

// ChoicePayload answers a choice question with distinct option ids
type ChoicePayload struct {
	AnswerIDs []string
}

func (TextPayload) payload()   {}
func (ChoicePayload) payload() {}

// Target is the question being answered as seen at submission time
type Target struct {
	Question   models.Question
	PollActive bool
	// OptionIDs holds the ids of the answers that belong to Question
	OptionIDs []string
}

// Submission validates req against target and returns the payload to
// persist. Checks run in a fixed order so the first failing rule decides
// the message: poll active, typed XOR selected, type-specific presence,
// then option membership.
func Submission(target Target, req models.SubmitAnswerRequest) (Payload, error) {
	if !target.PollActive {
		return nil, apperr.Validation(MsgInactivePoll)
	}

	qtype := target.Question.QType
	missing, err := missingMessage(qtype)
	if err != nil {
		return nil, err
	}

	hasTyped := req.TypedAnswer != nil && *req.TypedAnswer != ""
	hasSelected := len(req.SelectedAnswers) > 0

	if hasTyped == hasSelected {
		return nil, apperr.Validation(missing)
	}

	switch qtype {
	case models.QuestionText:
		if !hasTyped {
			return nil, apperr.Validation(MsgTextAnswer)
		}
		return TextPayload{Text: *req.TypedAnswer}, nil

	case models.QuestionOneOption, models.QuestionSeveralOptions:
		if !hasSelected {
			return nil, apperr.Validation(MsgChoiceAnswer)
		}
		ids := dedupe(req.SelectedAnswers)
		if qtype == models.QuestionOneOption && len(ids) != 1 {
			return nil, apperr.Validation(MsgOneOption)
		}
		if err := checkMembership(ids, target.OptionIDs); err != nil {
			return nil, err
		}
		return ChoicePayload{AnswerIDs: ids}, nil
	}

	return nil, apperr.Internal(MsgUnknownQType, nil)
}

func missingMessage(qtype models.QuestionType) (string, error) {
	switch qtype {
	case models.QuestionText:
		return MsgTextAnswer, nil
	case models.QuestionOneOption, models.QuestionSeveralOptions:
		return MsgChoiceAnswer, nil
	}
	return "", apperr.Internal(MsgUnknownQType, nil)
}

func checkMembership(ids, options []string) error {
	allowed := make(map[string]bool, len(options))
	for _, id := range options {
		allowed[id] = true
	}
	for _, id := range ids {
		if !allowed[id] {
			return apperr.ValidationFields(MsgForeignAnswer, map[string]string{
				"selected_answers": "Invalid answer id: " + id,
			})
		}
	}
	return nil
}

// dedupe keeps the first occurrence of each id in order
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
