// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth generates and checks identifiers and manage codes.

# Identifiers

Polls, choices and votes are keyed by random UUIDs:

	id := auth.NewID()

IDs are public. They appear in share links.

# Manage Codes

A manage code is a capability. Whoever holds it may edit or delete the poll
or ballot it belongs to:

	code := auth.NewManageCode()

Codes are random UUIDs too, drawn independently of the ID, so knowing a
poll's ID reveals nothing about its code.

# Parsing

Values from paths and cookies are checked before they reach storage:

	id, err := auth.ParseID(r.PathValue("id"))          // ErrInvalidID
	code, err := auth.ParseManageCode(r.PathValue("code")) // ErrInvalidCode

Both return the canonical lowercase form.
*/
package auth
