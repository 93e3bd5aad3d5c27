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

var accountColumns = []string{"id", "username", "password_hash", "role", "created_at"}

func (s *Store) CreateAccount(ctx context.Context, username, passwordHash, role string) (models.Account, error) {
	id, err := newID()
	if err != nil {
		return models.Account{}, err
	}
	acct := models.Account{
		ID:           id,
		Username:     username,
		Role:         role,
		PasswordHash: passwordHash,
		CreatedAt:    utc(time.Now()),
	}

	_, err = s.exec(ctx, s.db, s.sb.Insert("account").
		Columns(accountColumns...).
		Values(acct.ID, acct.Username, acct.PasswordHash, acct.Role, acct.CreatedAt))
	if isUniqueViolation(err) {
		return models.Account{}, apperr.Conflict("Username already taken")
	}
	if err != nil {
		return models.Account{}, fmt.Errorf("failed to insert account: %w", err)
	}
	return acct, nil
}

func (s *Store) GetAccount(ctx context.Context, id string) (models.Account, error) {
	return s.getAccount(ctx, sq.Eq{"id": id})
}

func (s *Store) GetAccountByUsername(ctx context.Context, username string) (models.Account, error) {
	return s.getAccount(ctx, sq.Eq{"username": username})
}

func (s *Store) getAccount(ctx context.Context, where sq.Eq) (models.Account, error) {
	row, err := s.queryRow(ctx, s.db, s.sb.Select(accountColumns...).From("account").Where(where))
	if err != nil {
		return models.Account{}, err
	}
	var a models.Account
	err = row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Role, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, apperr.NotFound("Account not found")
	}
	if err != nil {
		return models.Account{}, fmt.Errorf("failed to query account: %w", err)
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return a, nil
}

func (s *Store) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := s.exec(ctx, s.db, s.sb.Update("account").Set("password_hash", passwordHash).Where(sq.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	ok, err := affectedOne(res)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if !ok {
		return apperr.NotFound("Account not found")
	}
	return nil
}

// RevokeToken marks a token ID as logged out until it would have expired.
// Entries whose tokens have expired anyway are pruned on the way.
func (s *Store) RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error {
	now := utc(time.Now())
	if _, err := s.exec(ctx, s.db, s.sb.Delete("revoked_token").Where(sq.Lt{"expires_at": now})); err != nil {
		return fmt.Errorf("failed to prune revoked tokens: %w", err)
	}

	_, err := s.exec(ctx, s.db, s.sb.Insert("revoked_token").
		Columns("token_id", "expires_at").
		Values(tokenID, utc(expiresAt)))
	if err != nil && !isUniqueViolation(err) {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *Store) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	row, err := s.queryRow(ctx, s.db, s.sb.Select("COUNT(*)").From("revoked_token").Where(sq.Eq{"token_id": tokenID}))
	if err != nil {
		return false, err
	}
	var count int
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("failed to query revoked token: %w", err)
	}
	return count > 0, nil
}
