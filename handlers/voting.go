// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/diddle/auth"
	"github.com/danielhkuo/diddle/cliparse"
	"github.com/danielhkuo/diddle/middleware"
	"github.com/danielhkuo/diddle/models"
	"github.com/danielhkuo/diddle/voting"
)

type VotingHandler struct {
	engine *voting.Engine
	cfg    cliparse.Config
}

func NewVotingHandler(engine *voting.Engine, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{engine: engine, cfg: cfg}
}

// Vote handles POST /polls/{id}/votes
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	pollID, err := auth.ParseID(r.PathValue("id"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid poll id")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	req.VoterName = strings.TrimSpace(req.VoterName)
	if err := validateRequest(req, voteMessages); err != nil {
		writeError(w, err, msgPollNotFound)
		return
	}

	selected := make([]models.ID, 0, len(req.Choices))
	for _, raw := range req.Choices {
		id, err := auth.ParseID(raw)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid choice id")
			return
		}
		selected = append(selected, id)
	}

	code, err := h.engine.Vote(r.Context(), pollID, req.VoterName, selected)
	if err != nil {
		writeError(w, err, msgPollNotFound)
		return
	}

	middleware.SetCodeCookie(w, middleware.VoterCookiePrefix, code, h.cfg.SecureCookies)
	middleware.JSONResponse(w, http.StatusCreated, models.VoteResponse{ManageCode: code})
}

// GetVoter handles GET /voters/{code}
func (h *VotingHandler) GetVoter(w http.ResponseWriter, r *http.Request) {
	code, ok := manageCodeFromPath(w, r)
	if !ok {
		return
	}

	name, err := h.engine.VoterName(r.Context(), code)
	if err != nil {
		writeError(w, err, msgVoterMissing)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoterResponse{VoterName: name})
}

// DeleteVoter handles DELETE /voters/{code}: the ballot is withdrawn and
// its name becomes free again
func (h *VotingHandler) DeleteVoter(w http.ResponseWriter, r *http.Request) {
	code, ok := manageCodeFromPath(w, r)
	if !ok {
		return
	}

	name, err := h.engine.Withdraw(r.Context(), code)
	if err != nil {
		writeError(w, err, msgVoterMissing)
		return
	}

	slog.Info("ballot withdrawn")
	middleware.ClearCodeCookie(w, middleware.VoterCookiePrefix, code, h.cfg.SecureCookies)
	middleware.JSONResponse(w, http.StatusOK, models.VoterResponse{VoterName: name})
}
