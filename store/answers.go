// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/danielhkuo/quickly-survey/models"
)

// AnswerFilter narrows ListAnswers. Zero fields do not filter; a non-nil
// empty QuestionIDs matches nothing.
type AnswerFilter struct {
	ID          string
	QuestionID  string
	QuestionIDs []string
}

func (s *Store) ListAnswers(ctx context.Context, f AnswerFilter) ([]models.Answer, error) {
	b := s.sb.Select("id", "question_id", "text").From("answer").OrderBy("text", "id")
	if f.ID != "" {
		b = b.Where(sq.Eq{"id": f.ID})
	}
	if f.QuestionID != "" {
		b = b.Where(sq.Eq{"question_id": f.QuestionID})
	}
	if f.QuestionIDs != nil {
		if len(f.QuestionIDs) == 0 {
			return []models.Answer{}, nil
		}
		b = b.Where(sq.Eq{"question_id": f.QuestionIDs})
	}

	rows, err := s.query(ctx, s.db, b)
	if err != nil {
		return nil, fmt.Errorf("failed to query answers: %w", err)
	}
	defer rows.Close()

	answers := []models.Answer{}
	for rows.Next() {
		var a models.Answer
		if err := rows.Scan(&a.ID, &a.Question, &a.Text); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

// CreateAnswer inserts a. The caller has checked that a.Question exists.
func (s *Store) CreateAnswer(ctx context.Context, a models.Answer) (models.Answer, error) {
	id, err := newID()
	if err != nil {
		return models.Answer{}, err
	}
	a.ID = id

	_, err = s.exec(ctx, s.db, s.sb.Insert("answer").
		Columns("id", "question_id", "text").
		Values(a.ID, a.Question, a.Text))
	if err != nil {
		return models.Answer{}, fmt.Errorf("failed to insert answer: %w", err)
	}
	return a, nil
}

// AnswerIDs returns the ids of the options belonging to a question
func (s *Store) AnswerIDs(ctx context.Context, questionID string) ([]string, error) {
	rows, err := s.query(ctx, s.db, s.sb.Select("id").From("answer").Where(sq.Eq{"question_id": questionID}))
	if err != nil {
		return nil, fmt.Errorf("failed to query answer ids: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan answer id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
