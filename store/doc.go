// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the data access layer for polls, questions, answers,
submissions and accounts.

Queries are built with squirrel and executed on a *sql.DB, so the same
code runs against PostgreSQL and SQLite. New picks the placeholder style:

	st := store.New(conn, cfg.DatabaseType)
	polls, err := st.ListPolls(ctx, store.PollFilter{ActiveAt: &now})

# Errors

Missing rows are reported as apperr not-found errors ("Poll not found",
"Question not found", ...) and duplicate usernames as apperr conflicts.
Everything else is wrapped with context and returned as-is; handlers treat
it as an internal error.

# Time

Timestamps are written in UTC truncated to microseconds. Active windows
are compared in SQL as start_date <= now AND finish_date > now.

# Submissions

CreateUserAnswer only accepts a validation.Payload, so a row with both a
typed answer and selections cannot be written. The row and its selections
are inserted in one transaction.
*/
package store
