// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(handler))

Logs one line per request with method, path, status, client IP and
duration_ms. 5xx responses are logged at error level.

# CORS Middleware

Enable cross-origin requests for a separately hosted frontend:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies (capped at MaxBodyBytes):

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Capability Cookies

Browsers remember the manage codes they hold in cookies named
diddle_manage_code_<code> (polls) and diddle_voter_code_<code> (ballots):

	middleware.SetCodeCookie(w, middleware.PollCookiePrefix, code, secure)
	middleware.ClearCodeCookie(w, middleware.VoterCookiePrefix, code, secure)
	codes := middleware.CodesFromCookies(r, middleware.PollCookiePrefix)

Malformed codes in cookie names are skipped.
*/
package middleware
