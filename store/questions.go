// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/danielhkuo/quickly-survey/apperr"
	"github.com/danielhkuo/quickly-survey/models"
)

var questionColumns = []string{"question.id", "question.poll_id", "question.text", "question.qtype"}

// QuestionFilter narrows ListQuestions. Zero fields do not filter.
type QuestionFilter struct {
	ID      string
	PollID  string
	PollIDs []string
	// ActiveAt keeps questions whose poll is active at the instant
	ActiveAt *time.Time
}

func (s *Store) ListQuestions(ctx context.Context, f QuestionFilter) ([]models.Question, error) {
	b := s.sb.Select(questionColumns...).From("question").OrderBy("question.text", "question.id")
	if f.ID != "" {
		b = b.Where(sq.Eq{"question.id": f.ID})
	}
	if f.PollID != "" {
		b = b.Where(sq.Eq{"question.poll_id": f.PollID})
	}
	if f.PollIDs != nil {
		if len(f.PollIDs) == 0 {
			return []models.Question{}, nil
		}
		b = b.Where(sq.Eq{"question.poll_id": f.PollIDs})
	}
	if f.ActiveAt != nil {
		b = b.Join("poll ON poll.id = question.poll_id").Where(activeAt("poll.", *f.ActiveAt))
	}

	rows, err := s.query(ctx, s.db, b)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.Poll, &q.Text, &q.QType); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (s *Store) GetQuestion(ctx context.Context, id string) (models.Question, error) {
	row, err := s.queryRow(ctx, s.db, s.sb.Select(questionColumns...).From("question").Where(sq.Eq{"question.id": id}))
	if err != nil {
		return models.Question{}, err
	}
	var q models.Question
	err = row.Scan(&q.ID, &q.Poll, &q.Text, &q.QType)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Question{}, apperr.NotFound("Question not found")
	}
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to query question: %w", err)
	}
	return q, nil
}

// GetQuestionDetail loads a question with its answer options
func (s *Store) GetQuestionDetail(ctx context.Context, id string) (models.QuestionDetail, error) {
	q, err := s.GetQuestion(ctx, id)
	if err != nil {
		return models.QuestionDetail{}, err
	}
	answers, err := s.ListAnswers(ctx, AnswerFilter{QuestionID: q.ID})
	if err != nil {
		return models.QuestionDetail{}, err
	}
	return models.QuestionDetail{Question: q, Answers: answers}, nil
}

// CreateQuestion inserts q. The caller has checked that q.Poll exists.
func (s *Store) CreateQuestion(ctx context.Context, q models.Question) (models.Question, error) {
	id, err := newID()
	if err != nil {
		return models.Question{}, err
	}
	q.ID = id

	_, err = s.exec(ctx, s.db, s.sb.Insert("question").
		Columns("id", "poll_id", "text", "qtype").
		Values(q.ID, q.Poll, q.Text, q.QType))
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to insert question: %w", err)
	}
	return q, nil
}

// UpdateQuestion writes text and qtype; the parent poll does not change
func (s *Store) UpdateQuestion(ctx context.Context, q models.Question) error {
	res, err := s.exec(ctx, s.db, s.sb.Update("question").
		Set("text", q.Text).
		Set("qtype", q.QType).
		Where(sq.Eq{"id": q.ID}))
	if err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}
	ok, err := affectedOne(res)
	if err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}
	if !ok {
		return apperr.NotFound("Question not found")
	}
	return nil
}

func (s *Store) DeleteQuestion(ctx context.Context, id string) error {
	res, err := s.exec(ctx, s.db, s.sb.Delete("question").Where(sq.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	ok, err := affectedOne(res)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	if !ok {
		return apperr.NotFound("Question not found")
	}
	return nil
}
