// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/diddle/db"
	"github.com/danielhkuo/diddle/middleware"
	"github.com/danielhkuo/diddle/models"
	"github.com/danielhkuo/diddle/voting"
)

const (
	msgInternal     = "Internal server error"
	msgNameTaken    = "That name is already in use"
	msgPollNotFound = "Poll not found"
	msgVoterMissing = "Vote not found"
	msgInvalidJSON  = "Invalid JSON"
)

// writeError maps err to a status and writes it. notFound is the message
// used for db.ErrNotFound, which means different things per route.
func writeError(w http.ResponseWriter, err error, notFound string) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		middleware.ErrorResponse(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, voting.ErrPollNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, msgPollNotFound)
	case errors.Is(err, voting.ErrVoterNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, msgVoterMissing)
	case errors.Is(err, db.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, notFound)
	case errors.Is(err, voting.ErrNameTaken), errors.Is(err, db.ErrNameTaken):
		middleware.ErrorResponse(w, http.StatusConflict, msgNameTaken)
	default:
		slog.Error("request failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, msgInternal)
	}
}
