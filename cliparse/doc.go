// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

LoadDotEnv reads an optional .env file, then ParseFlags returns a Config:

	if err := cliparse.LoadDotEnv(); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite (default) or postgres
  - DatabaseURL: sqlite file path (default: diddle.sqlite3) or PostgreSQL connection string
  - BaseURL: Prefix for share and manage links (default: http://localhost:<port>)
  - LogLevel: debug, info (default), warn or error
  - Notifier: log (default), redis or none
  - RedisURL: Redis connection URL (required for the redis notifier)
  - NotifyChannel: Redis channel (default: diddle:notifications)
  - NotifyDelay: Pause between notification tasks (default: 100ms)
  - SecureCookies: Mark capability cookies Secure

# CLI Flags

	-p               Server port
	-d               Database URL
	-t               Database type
	-base-url        Public base URL
	-log-level       Log level
	-notifier        Notification backend
	-redis-url       Redis URL
	-secure-cookies  Secure cookies

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	BASE_URL       → -base-url
	LOG_LEVEL      → -log-level
	NOTIFIER       → -notifier
	REDIS_URL      → -redis-url
	SECURE_COOKIES → -secure-cookies
	NOTIFY_CHANNEL
	NOTIFY_DELAY   (Go duration, e.g. 250ms)

CLI flags take precedence over environment variables, and variables already
in the environment take precedence over .env.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing for postgres
  - REDIS_URL is missing for the redis notifier
  - PORT, NOTIFY_DELAY or SECURE_COOKIES cannot be parsed
  - the database type or notifier is unknown
*/
package cliparse
