// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Survey API server.

Quickly Survey lets administrators publish polls of text, single-choice and
multiple-choice questions. Authenticated users answer them while a poll is
active and browse the answers afterwards.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=survey.db JWT_SECRET=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -jwt-secret ...

A .env file in the working directory is loaded first when present.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - JWT_SECRET (-jwt-secret): HMAC key for bearer tokens

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - TOKEN_TTL (-token-ttl): Token lifetime (default: 24h)
  - ADMIN_USERNAME, ADMIN_PASSWORD: Admin account created on first start
  - RESULTS_OWN_ONLY: Restrict non-admin results to their own answers
  - LOG_LEVEL, LOG_FORMAT: slog level and text or json output

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (polls, questions, answers, polling, results, accounts)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Authentication, CORS, logging, JSON helpers
  - store: SQL repository built with squirrel
  - validation: Request and submission rules
  - access: Roles, capabilities and request identity
  - apperr: Error kinds and HTTP status mapping
  - models: Domain and request/response types
  - auth: ID generation, password hashing and tokens
  - db: Driver selection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
