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

var pollColumns = []string{"poll.id", "poll.title", "poll.start_date", "poll.finish_date", "poll.description"}

// PollFilter narrows ListPolls. Zero fields do not filter.
type PollFilter struct {
	ID string
	// ActiveAt keeps polls whose window contains the instant
	ActiveAt *time.Time
	// AnsweredBy keeps polls with at least one answer from the account
	AnsweredBy string
}

func activeAt(prefix string, t time.Time) sq.And {
	now := utc(t)
	return sq.And{
		sq.LtOrEq{prefix + "start_date": now},
		sq.Gt{prefix + "finish_date": now},
	}
}

func (s *Store) ListPolls(ctx context.Context, f PollFilter) ([]models.Poll, error) {
	b := s.sb.Select(pollColumns...).From("poll").OrderBy("poll.start_date DESC", "poll.id")
	if f.ID != "" {
		b = b.Where(sq.Eq{"poll.id": f.ID})
	}
	if f.ActiveAt != nil {
		b = b.Where(activeAt("poll.", *f.ActiveAt))
	}
	if f.AnsweredBy != "" {
		b = b.Where(sq.Expr(`EXISTS (
			SELECT 1 FROM question q
			JOIN user_answer ua ON ua.question_id = q.id
			WHERE q.poll_id = poll.id AND ua.account_id = ?
		)`, f.AnsweredBy))
	}

	rows, err := s.query(ctx, s.db, b)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	polls := []models.Poll{}
	for rows.Next() {
		p, err := scanPoll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, p)
	}
	return polls, rows.Err()
}

func (s *Store) GetPoll(ctx context.Context, id string) (models.Poll, error) {
	row, err := s.queryRow(ctx, s.db, s.sb.Select(pollColumns...).From("poll").Where(sq.Eq{"poll.id": id}))
	if err != nil {
		return models.Poll{}, err
	}
	p, err := scanPoll(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Poll{}, apperr.NotFound("Poll not found")
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to query poll: %w", err)
	}
	return p, nil
}

func (s *Store) CreatePoll(ctx context.Context, p models.Poll) (models.Poll, error) {
	id, err := newID()
	if err != nil {
		return models.Poll{}, err
	}
	p.ID = id
	p.StartDate = utc(p.StartDate)
	p.FinishDate = utc(p.FinishDate)

	_, err = s.exec(ctx, s.db, s.sb.Insert("poll").
		Columns("id", "title", "start_date", "finish_date", "description", "created_at").
		Values(p.ID, p.Title, p.StartDate, p.FinishDate, p.Description, utc(time.Now())))
	if isCheckViolation(err) {
		return models.Poll{}, windowError()
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to insert poll: %w", err)
	}
	return p, nil
}

// UpdatePoll writes the mutable fields of p. start_date is never written.
func (s *Store) UpdatePoll(ctx context.Context, p models.Poll) error {
	res, err := s.exec(ctx, s.db, s.sb.Update("poll").
		Set("title", p.Title).
		Set("finish_date", utc(p.FinishDate)).
		Set("description", p.Description).
		Where(sq.Eq{"id": p.ID}))
	if isCheckViolation(err) {
		return windowError()
	}
	if err != nil {
		return fmt.Errorf("failed to update poll: %w", err)
	}
	ok, err := affectedOne(res)
	if err != nil {
		return fmt.Errorf("failed to update poll: %w", err)
	}
	if !ok {
		return apperr.NotFound("Poll not found")
	}
	return nil
}

// DeletePoll removes the poll and, by cascade, its questions, answers and
// user answers.
func (s *Store) DeletePoll(ctx context.Context, id string) error {
	res, err := s.exec(ctx, s.db, s.sb.Delete("poll").Where(sq.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}
	ok, err := affectedOne(res)
	if err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}
	if !ok {
		return apperr.NotFound("Poll not found")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPoll(r rowScanner) (models.Poll, error) {
	var p models.Poll
	if err := r.Scan(&p.ID, &p.Title, &p.StartDate, &p.FinishDate, &p.Description); err != nil {
		return models.Poll{}, err
	}
	p.StartDate = p.StartDate.UTC()
	p.FinishDate = p.FinishDate.UTC()
	return p, nil
}
