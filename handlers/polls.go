// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/diddle/auth"
	"github.com/danielhkuo/diddle/cliparse"
	"github.com/danielhkuo/diddle/db"
	"github.com/danielhkuo/diddle/middleware"
	"github.com/danielhkuo/diddle/models"
	"github.com/danielhkuo/diddle/tally"
)

// PollEvents receives newly created polls. *notify.Dispatcher satisfies it.
type PollEvents interface {
	PollCreated(pollID models.ID)
}

type PollHandler struct {
	store  *db.Store
	events PollEvents
	cfg    cliparse.Config
}

// NewPollHandler builds the poll handler. events may be nil.
func NewPollHandler(store *db.Store, events PollEvents, cfg cliparse.Config) *PollHandler {
	return &PollHandler{store: store, events: events, cfg: cfg}
}

// pollInfoFromRequest trims and validates the editable poll fields
func pollInfoFromRequest(w http.ResponseWriter, r *http.Request) (models.PollInfo, bool) {
	var req models.PollInfoRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, msgInvalidJSON)
		return models.PollInfo{}, false
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.AuthorName = strings.TrimSpace(req.AuthorName)
	req.AuthorEmail = strings.TrimSpace(req.AuthorEmail)

	if err := validateRequest(req, pollInfoMessages); err != nil {
		writeError(w, err, msgPollNotFound)
		return models.PollInfo{}, false
	}

	return models.PollInfo{
		Title:       req.Title,
		Description: req.Description,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		IsWholeDay:  req.IsWholeDay,
	}, true
}

// manageCodeFromPath rejects malformed codes before they reach storage
func manageCodeFromPath(w http.ResponseWriter, r *http.Request) (models.ManageCode, bool) {
	code, err := auth.ParseManageCode(r.PathValue("code"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid manage code")
		return "", false
	}
	return code, true
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	info, ok := pollInfoFromRequest(w, r)
	if !ok {
		return
	}

	poll, err := h.store.CreatePoll(r.Context(), info)
	if err != nil {
		writeError(w, err, msgPollNotFound)
		return
	}

	slog.Info("poll created", "poll_id", poll.ID, "author", poll.AuthorName)
	if h.events != nil {
		h.events.PollCreated(poll.ID)
	}

	middleware.SetCodeCookie(w, middleware.PollCookiePrefix, poll.ManageCode, h.cfg.SecureCookies)
	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
		PollID:     poll.ID,
		ManageCode: poll.ManageCode,
		ShareURL:   poll.ShareURL(h.cfg.BaseURL),
		ManageURL:  poll.ManageURL(h.cfg.BaseURL),
	})
}

// MyPolls handles GET /polls/mine: the polls whose manage codes this
// browser holds in cookies, newest first
func (h *PollHandler) MyPolls(w http.ResponseWriter, r *http.Request) {
	codes := middleware.CodesFromCookies(r, middleware.PollCookiePrefix)

	polls, err := h.store.GetPollsByCodes(r.Context(), codes)
	if err != nil {
		writeError(w, err, msgPollNotFound)
		return
	}

	now := time.Now()
	items := make([]models.PollListItem, 0, len(polls))
	for _, p := range polls {
		items = append(items, models.PollListItem{
			ID:           p.ID,
			Title:        p.Title,
			AuthorName:   p.AuthorName,
			PubDate:      p.PubDate,
			Published:    p.PublishedLabel(),
			PublishedAgo: p.PublishedAgo(now),
			ShareURL:     p.ShareURL(h.cfg.BaseURL),
			ManageURL:    p.ManageURL(h.cfg.BaseURL),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.MyPollsResponse{Polls: items})
}

// GetPoll handles GET /polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID, err := auth.ParseID(r.PathValue("id"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid poll id")
		return
	}

	poll, err := h.store.GetPoll(r.Context(), pollID)
	if err != nil {
		writeError(w, err, msgPollNotFound)
		return
	}

	summary, mostVoted := tally.Summary(poll)
	middleware.JSONResponse(w, http.StatusOK, models.PollView{
		Poll:          poll,
		Summary:       summary,
		MostVotedIDs:  mostVoted,
		VoterNames:    poll.VoterNames(),
		ManagedVoters: poll.ManagedVoters(middleware.CodeSet(r, middleware.VoterCookiePrefix)),
		ShareURL:      poll.ShareURL(h.cfg.BaseURL),
	})
}

// GetManagedPoll handles GET /manage/{code}. An optional last_choice query
// parameter is echoed back when it names a choice of the poll.
func (h *PollHandler) GetManagedPoll(w http.ResponseWriter, r *http.Request) {
	code, ok := manageCodeFromPath(w, r)
	if !ok {
		return
	}

	poll, err := h.store.GetPollByCode(r.Context(), code)
	if err != nil {
		writeError(w, err, msgPollNotFound)
		return
	}

	resp := models.ManagePollResponse{
		Poll:      poll,
		ShareURL:  poll.ShareURL(h.cfg.BaseURL),
		ManageURL: poll.ManageURL(h.cfg.BaseURL),
	}
	if last := r.URL.Query().Get("last_choice"); last != "" {
		if id, err := auth.ParseID(last); err == nil && poll.HasChoice(id) {
			resp.LastChoiceID = &id
		}
	}

	// Visiting the manage link adopts the poll into "my polls"
	middleware.SetCodeCookie(w, middleware.PollCookiePrefix, code, h.cfg.SecureCookies)
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// UpdatePoll handles PUT /manage/{code}
func (h *PollHandler) UpdatePoll(w http.ResponseWriter, r *http.Request) {
	code, ok := manageCodeFromPath(w, r)
	if !ok {
		return
	}

	info, ok := pollInfoFromRequest(w, r)
	if !ok {
		return
	}

	pollID, err := h.store.UpdatePollInfo(r.Context(), code, info)
	if err != nil {
		writeError(w, err, msgPollNotFound)
		return
	}

	slog.Info("poll updated", "poll_id", pollID)
	middleware.JSONResponse(w, http.StatusOK, models.UpdatePollResponse{PollID: pollID})
}

// DeletePoll handles DELETE /manage/{code}
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	code, ok := manageCodeFromPath(w, r)
	if !ok {
		return
	}

	poll, err := h.store.GetPollByCode(r.Context(), code)
	if err != nil {
		writeError(w, err, msgPollNotFound)
		return
	}

	if err := h.store.DeletePoll(r.Context(), code); err != nil {
		writeError(w, err, msgPollNotFound)
		return
	}

	slog.Info("poll deleted", "poll_id", poll.ID)
	middleware.ClearCodeCookie(w, middleware.PollCookiePrefix, code, h.cfg.SecureCookies)
	w.WriteHeader(http.StatusNoContent)
}

// AddChoice handles POST /manage/{code}/choices
func (h *PollHandler) AddChoice(w http.ResponseWriter, r *http.Request) {
	code, ok := manageCodeFromPath(w, r)
	if !ok {
		return
	}

	var req models.AddChoiceRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if err := validateRequest(req, choiceMessages); err != nil {
		writeError(w, err, msgPollNotFound)
		return
	}

	poll, err := h.store.GetPollByCode(r.Context(), code)
	if err != nil {
		writeError(w, err, msgPollNotFound)
		return
	}

	start, end, err := choiceBounds(req, poll.IsWholeDay)
	if err != nil {
		writeError(w, err, msgPollNotFound)
		return
	}

	choiceID, err := h.store.AddChoiceToPoll(r.Context(), code, start, end)
	if err != nil {
		writeError(w, err, msgPollNotFound)
		return
	}

	slog.Info("choice added", "poll_id", poll.ID, "choice_id", choiceID)
	middleware.JSONResponse(w, http.StatusCreated, models.AddChoiceResponse{ChoiceID: choiceID})
}

// DeleteChoice handles DELETE /manage/{code}/choices/{choiceID}
func (h *PollHandler) DeleteChoice(w http.ResponseWriter, r *http.Request) {
	code, ok := manageCodeFromPath(w, r)
	if !ok {
		return
	}
	choiceID, err := auth.ParseID(r.PathValue("choiceID"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid choice id")
		return
	}

	poll, err := h.store.GetPollByCode(r.Context(), code)
	if err != nil {
		writeError(w, err, msgPollNotFound)
		return
	}
	// The manage code only grants rights over its own poll's choices
	if !poll.HasChoice(choiceID) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Choice not found")
		return
	}

	if err := h.store.DeleteChoice(r.Context(), choiceID); err != nil {
		writeError(w, err, "Choice not found")
		return
	}

	slog.Info("choice deleted", "poll_id", poll.ID, "choice_id", choiceID)
	w.WriteHeader(http.StatusNoContent)
}
