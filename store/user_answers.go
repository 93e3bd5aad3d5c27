// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/validation"
)

// UserAnswerFilter narrows ListUserAnswers. A non-nil empty QuestionIDs
// matches nothing.
type UserAnswerFilter struct {
	QuestionIDs []string
	AccountID   string
}

// CreateUserAnswer records one submission. The payload decides which of
// typed_answer and the option selections is written.
func (s *Store) CreateUserAnswer(ctx context.Context, accountID, questionID string, payload validation.Payload) (models.UserAnswer, error) {
	id, err := newID()
	if err != nil {
		return models.UserAnswer{}, err
	}

	ua := models.UserAnswer{
		ID:              id,
		AccountID:       accountID,
		Question:        questionID,
		SelectedAnswers: []string{},
		CreatedAt:       utc(time.Now()),
	}

	var typed sql.NullString
	switch p := payload.(type) {
	case validation.TextPayload:
		text := p.Text
		ua.TypedAnswer = &text
		typed = sql.NullString{String: text, Valid: true}
	case validation.ChoicePayload:
		ua.SelectedAnswers = append(ua.SelectedAnswers, p.AnswerIDs...)
	default:
		return models.UserAnswer{}, fmt.Errorf("unsupported payload %T", payload)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.UserAnswer{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = s.exec(ctx, tx, s.sb.Insert("user_answer").
		Columns("id", "account_id", "question_id", "typed_answer", "created_at").
		Values(ua.ID, ua.AccountID, ua.Question, typed, ua.CreatedAt))
	if err != nil {
		return models.UserAnswer{}, fmt.Errorf("failed to insert user answer: %w", err)
	}

	if len(ua.SelectedAnswers) > 0 {
		ins := s.sb.Insert("user_answer_selection").Columns("user_answer_id", "answer_id")
		for _, answerID := range ua.SelectedAnswers {
			ins = ins.Values(ua.ID, answerID)
		}
		if _, err := s.exec(ctx, tx, ins); err != nil {
			return models.UserAnswer{}, fmt.Errorf("failed to insert selections: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.UserAnswer{}, fmt.Errorf("failed to commit user answer: %w", err)
	}
	return ua, nil
}

// ListUserAnswers returns submissions ordered by creation, each with its
// selected option ids.
func (s *Store) ListUserAnswers(ctx context.Context, f UserAnswerFilter) ([]models.UserAnswer, error) {
	b := s.sb.Select("id", "account_id", "question_id", "typed_answer", "created_at").
		From("user_answer").
		OrderBy("created_at", "id")
	if f.QuestionIDs != nil {
		if len(f.QuestionIDs) == 0 {
			return []models.UserAnswer{}, nil
		}
		b = b.Where(sq.Eq{"question_id": f.QuestionIDs})
	}
	if f.AccountID != "" {
		b = b.Where(sq.Eq{"account_id": f.AccountID})
	}

	rows, err := s.query(ctx, s.db, b)
	if err != nil {
		return nil, fmt.Errorf("failed to query user answers: %w", err)
	}
	defer rows.Close()

	answers := []models.UserAnswer{}
	index := map[string]int{}
	for rows.Next() {
		var ua models.UserAnswer
		var typed sql.NullString
		if err := rows.Scan(&ua.ID, &ua.AccountID, &ua.Question, &typed, &ua.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user answer: %w", err)
		}
		if typed.Valid {
			text := typed.String
			ua.TypedAnswer = &text
		}
		ua.CreatedAt = ua.CreatedAt.UTC()
		ua.SelectedAnswers = []string{}
		index[ua.ID] = len(answers)
		answers = append(answers, ua)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if len(answers) == 0 {
		return answers, nil
	}

	ids := make([]string, len(answers))
	for i, ua := range answers {
		ids[i] = ua.ID
	}
	sel, err := s.query(ctx, s.db, s.sb.Select("user_answer_id", "answer_id").
		From("user_answer_selection").
		Where(sq.Eq{"user_answer_id": ids}).
		OrderBy("user_answer_id", "answer_id"))
	if err != nil {
		return nil, fmt.Errorf("failed to query selections: %w", err)
	}
	defer sel.Close()

	for sel.Next() {
		var uaID, answerID string
		if err := sel.Scan(&uaID, &answerID); err != nil {
			return nil, fmt.Errorf("failed to scan selection: %w", err)
		}
		if i, ok := index[uaID]; ok {
			answers[i].SelectedAnswers = append(answers[i].SelectedAnswers, answerID)
		}
	}
	return answers, sel.Err()
}
