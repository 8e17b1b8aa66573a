// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the diddle API.

# Handler Types

  - PollHandler: Poll creation, viewing and management
  - VotingHandler: Ballot submission and withdrawal

	pollHandler := handlers.NewPollHandler(store, dispatcher, cfg)
	votingHandler := handlers.NewVotingHandler(engine, cfg)

# Poll Management

Anyone may create a poll. The response carries its manage code, which is
also stored in a diddle_manage_code_<code> cookie:

	POST   /polls                                → CreatePoll
	GET    /manage/{code}                        → GetManagedPoll
	PUT    /manage/{code}                        → UpdatePoll
	DELETE /manage/{code}                        → DeletePoll
	POST   /manage/{code}/choices                → AddChoice
	DELETE /manage/{code}/choices/{choiceID}     → DeleteChoice

Choice bounds accept YYYY-MM-DD, YYYY-MM-DD HH:MM[:SS] and
YYYY-MM-DDTHH:MM. A bare date covers the whole day, and whole-day polls
widen every choice to full days.

# Voting Flow

	GET    /polls/{id}        → GetPoll (choices, votes and tally)
	POST   /polls/{id}/votes  → Vote (returns the ballot's manage code)
	GET    /voters/{code}     → GetVoter
	DELETE /voters/{code}     → DeleteVoter

A ballot has a row for every choice of the poll. A name may vote once per
poll; a second ballot under the same name gets 409.

# Errors

Every error is JSON: {"error": <status text>, "message": <text>}.
Validation problems are 400, unknown polls and ballots 404, taken names 409.
Storage failures are logged and reported as a generic 500.
*/
package handlers
