// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the diddle API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, engine, dispatcher, cfg)

# Endpoints

Health:

	GET /health - Pings the database

Polls (public, by id):

	POST /polls           - Create poll
	GET  /polls/mine      - Polls whose manage codes are in cookies
	GET  /polls/{id}      - Poll with votes and tally
	POST /polls/{id}/votes - Submit a ballot

Ballots (by ballot manage code):

	GET    /voters/{code} - Voter name
	DELETE /voters/{code} - Withdraw ballot

Poll management (by poll manage code):

	GET    /manage/{code}                    - Poll for the organizer
	PUT    /manage/{code}                    - Update title, description, author
	DELETE /manage/{code}                    - Delete poll
	POST   /manage/{code}/choices            - Add a time slot
	DELETE /manage/{code}/choices/{choiceID} - Remove a time slot

Every route except health and root is wrapped with middleware.WithLogging.
*/
package router
