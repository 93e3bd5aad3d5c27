package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	JWTSecret      string
	TokenTTL       time.Duration
	AdminUsername  string
	AdminPassword  string
	ResultsOwnOnly bool
	LogLevel       string
	LogFormat      string
}

// ParseFlags validates flags and fills unset values from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("quickly-survey", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "Token signing secret (prefer env)")
	fs.DurationVar(&cfg.TokenTTL, "token-ttl", 0, "Access token lifetime")
	fs.StringVar(&cfg.AdminUsername, "admin-user", "", "Bootstrap admin username")
	fs.StringVar(&cfg.AdminPassword, "admin-password", "", "Bootstrap admin password (prefer env)")

	resultsOwnOnly := fs.String("results-own-only", "", "Show only the caller's own answers in results (true/false)")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (text or json)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("DATABASE_TYPE must be sqlite or postgres")
	}

	// Secrets - MUST be provided
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	if cfg.TokenTTL == 0 {
		if ttlStr := os.Getenv("TOKEN_TTL"); ttlStr != "" {
			ttl, err := time.ParseDuration(ttlStr)
			if err != nil {
				return Config{}, errors.New("invalid TOKEN_TTL env variable")
			}
			cfg.TokenTTL = ttl
		} else {
			cfg.TokenTTL = 24 * time.Hour
		}
	}
	if cfg.TokenTTL < 0 {
		return Config{}, errors.New("token TTL must be positive")
	}

	// Optional bootstrap admin; both or neither
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = os.Getenv("ADMIN_USERNAME")
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	}
	if (cfg.AdminUsername == "") != (cfg.AdminPassword == "") {
		return Config{}, errors.New("ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}

	if *resultsOwnOnly == "" {
		*resultsOwnOnly = os.Getenv("RESULTS_OWN_ONLY")
	}
	if *resultsOwnOnly != "" {
		v, err := strconv.ParseBool(*resultsOwnOnly)
		if err != nil {
			return Config{}, errors.New("invalid RESULTS_OWN_ONLY value")
		}
		cfg.ResultsOwnOnly = v
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = os.Getenv("LOG_LEVEL")
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = os.Getenv("LOG_FORMAT")
	}

	return cfg, nil
}
