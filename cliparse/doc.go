// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Connection string or SQLite file (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - JWTSecret: Access token signing secret (required)
  - TokenTTL: Access token lifetime (default: 24h)
  - AdminUsername, AdminPassword: Bootstrap admin account (optional)
  - ResultsOwnOnly: Hide other accounts' answers in results (default: false)
  - LogLevel, LogFormat: slog level and text/json output

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type
	--jwt-secret      Token signing secret
	--token-ttl       Token lifetime
	--admin-user      Bootstrap admin username
	--admin-password  Bootstrap admin password
	--results-own-only
	--log-level
	--log-format

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	JWT_SECRET       → --jwt-secret
	TOKEN_TTL        → --token-ttl
	ADMIN_USERNAME   → --admin-user
	ADMIN_PASSWORD   → --admin-password
	RESULTS_OWN_ONLY → --results-own-only
	LOG_LEVEL        → --log-level
	LOG_FORMAT       → --log-format

CLI flags take precedence over environment variables. main loads a .env
file (if present) before parsing, so it can supply any of these.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - JWT_SECRET is missing
  - DATABASE_TYPE is not sqlite or postgres
  - only one of ADMIN_USERNAME and ADMIN_PASSWORD is set
*/
package cliparse
