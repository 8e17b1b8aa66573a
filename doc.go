// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the diddle API server.

diddle schedules meetings: an organizer proposes time slots, participants
mark the ones they can make, and the slots with the most yes votes win.
There are no accounts. Every poll and every ballot gets a secret manage code
that grants edit and delete rights, and the browser remembers the codes it
holds in cookies.

# Starting the Server

With no configuration the server uses a local sqlite file:

	go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

A .env file in the working directory is loaded first.

# Configuration

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - DATABASE_URL (-d): sqlite path or PostgreSQL connection string
  - BASE_URL (-base-url): Prefix for share and manage links
  - LOG_LEVEL (-log-level): debug, info, warn or error
  - NOTIFIER (-notifier): log, redis or none
  - REDIS_URL (-redis-url): Redis URL for the redis notifier

# Architecture

  - handlers: HTTP request handlers (polls, ballots)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON and cookie helpers
  - voting: Ballot normalization and submission
  - tally: Most-voted choices
  - notify: Background notifications to poll authors
  - models: Domain, request and response types
  - auth: Identifier and manage code generation
  - db: Storage and migrations
  - cliparse: Configuration parsing

The HTTP server and the notification worker run in one errgroup and stop
together on SIGINT or SIGTERM.
*/
package main
