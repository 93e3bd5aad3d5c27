// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The same DDL runs on PostgreSQL and SQLite, so it sticks to the common
// subset: TEXT ids, TIMESTAMP columns written in UTC, CHECK constraints.
const schema = `
-- Accounts
CREATE TABLE IF NOT EXISTS account (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'user')),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Revoked tokens (logout)
CREATE TABLE IF NOT EXISTS revoked_token (
    token_id TEXT PRIMARY KEY,
    expires_at TIMESTAMP NOT NULL
);

-- Polls
CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    title VARCHAR(255) NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    start_date TIMESTAMP NOT NULL,
    finish_date TIMESTAMP NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    CHECK (finish_date > start_date)
);

CREATE INDEX IF NOT EXISTS idx_poll_start_date ON poll(start_date);
CREATE INDEX IF NOT EXISTS idx_poll_finish_date ON poll(finish_date);

-- Questions
CREATE TABLE IF NOT EXISTS question (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    text VARCHAR(255) NOT NULL,
    qtype INTEGER NOT NULL CHECK (qtype IN (1, 2, 3))
);

CREATE INDEX IF NOT EXISTS idx_question_poll_id ON question(poll_id);

-- Answer options
CREATE TABLE IF NOT EXISTS answer (
    id TEXT PRIMARY KEY,
    question_id TEXT NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    text VARCHAR(255) NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_answer_question_id ON answer(question_id);

-- User answers
CREATE TABLE IF NOT EXISTS user_answer (
    id TEXT PRIMARY KEY,
    account_id TEXT NOT NULL REFERENCES account(id) ON DELETE CASCADE,
    question_id TEXT NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    typed_answer VARCHAR(255),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_user_answer_account_id ON user_answer(account_id);
CREATE INDEX IF NOT EXISTS idx_user_answer_question_id ON user_answer(question_id);

-- Selected options of a user answer
CREATE TABLE IF NOT EXISTS user_answer_selection (
    user_answer_id TEXT NOT NULL REFERENCES user_answer(id) ON DELETE CASCADE,
    answer_id TEXT NOT NULL REFERENCES answer(id) ON DELETE CASCADE,
    PRIMARY KEY (user_answer_id, answer_id)
);

CREATE INDEX IF NOT EXISTS idx_user_answer_selection_answer_id ON user_answer_selection(answer_id);
`
