// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connecting

Open selects the driver from the configured database type:

	conn, err := db.Open(db.TypePostgres, "postgres://...")  // lib/pq
	conn, err := db.Open(db.TypeSQLite, "quickly-survey.db") // modernc.org/sqlite

SQLite connections always enable foreign keys, so cascades behave the
same on both engines.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - account: login identities with role (admin or user)
  - revoked_token: token IDs invalidated by logout
  - poll: title, description, start_date, finish_date
  - question: text and qtype (1 text, 2 one option, 3 several options)
  - answer: candidate options of a question
  - user_answer: one account's response to one question
  - user_answer_selection: options picked in a user answer

# Relationships

	poll 1──* question 1──* answer
	question 1──* user_answer *──* answer (via user_answer_selection)
	account 1──* user_answer

All foreign keys use ON DELETE CASCADE. poll has CHECK (finish_date > start_date).
*/
package db
