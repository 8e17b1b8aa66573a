// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db is the persistence layer for polls, choices and votes.

# Opening

Run migrations, then open a Store:

	if err := db.Migrate(db.DialectSQLite, "diddle.sqlite3"); err != nil {
		log.Fatal(err)
	}
	store, err := db.Open(ctx, db.DialectSQLite, "diddle.sqlite3")

Two dialects are supported: sqlite (modernc.org/sqlite, the default) and
postgres (lib/pq). Queries use $n placeholders, accepted by both.

# Migrations

Numbered SQL files in migrations/ are embedded and applied in order by
golang-migrate. Each runs at most once; the applied version is kept in
schema_migrations.

# Tables

  - polls: title, author, publish date, manage_code (unique)
  - choices: start/end time slots of a poll
  - voters: one row per ballot, UNIQUE (poll_id, voter_name)
  - votes: one yes/no per choice per ballot, UNIQUE (poll_id, choice_id, voter_name)

# Relationships

	polls 1──* choices
	polls 1──* voters
	choices 1──* votes
	voters 1──* votes (by manage_code)

All foreign keys use ON DELETE CASCADE. Deletes also remove children
explicitly inside the same transaction.

# Transactions

Every Store method runs in its own transaction and either fully commits or
fully rolls back. SQLite transactions begin IMMEDIATE so concurrent ballots
queue for the write lock; on postgres the unique indexes make the second
inserter wait for the first.

# Errors

  - ErrNotFound: no poll, choice or voter for the id/code
  - ErrNameTaken: ballot rejected, the name is used in this poll

Anything else is a storage fault.
*/
package db
