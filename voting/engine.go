// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package voting turns a voter's selection into a stored ballot.
package voting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/danielhkuo/diddle/db"
	"github.com/danielhkuo/diddle/models"
)

var (
	ErrPollNotFound  = errors.New("poll not found")
	ErrVoterNotFound = errors.New("voter not found")
	ErrNameTaken     = errors.New("name already taken")
)

// Store is the slice of *db.Store the engine needs.
type Store interface {
	GetPoll(ctx context.Context, id models.ID) (models.Poll, error)
	VotePoll(ctx context.Context, pollID models.ID, voterName string, selections map[models.ID]int) (models.ManageCode, error)
	GetVoterNameByManageCode(ctx context.Context, code models.ManageCode) (string, error)
	DeleteVoter(ctx context.Context, code models.ManageCode) error
}

// Events receives successful ballots. *notify.Dispatcher satisfies it.
type Events interface {
	Participation(pollID models.ID, voterName string)
}

type Engine struct {
	store  Store
	events Events
}

// NewEngine builds an engine. events may be nil.
func NewEngine(store Store, events Events) *Engine {
	return &Engine{store: store, events: events}
}

// Vote records a full ballot: every choice of the poll gets a row, 1 for
// the selected ones and 0 for the rest. Selected ids that are not choices
// of the poll are ignored. Returns the ballot's manage code.
func (e *Engine) Vote(ctx context.Context, pollID models.ID, voterName string, selected []models.ID) (models.ManageCode, error) {
	name, err := normalizeVoterName(voterName)
	if err != nil {
		return "", err
	}

	poll, err := e.store.GetPoll(ctx, pollID)
	if errors.Is(err, db.ErrNotFound) {
		return "", ErrPollNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load poll: %w", err)
	}

	// VotePoll re-reads the choice set inside its own transaction.
	code, err := e.store.VotePoll(ctx, poll.ID, name, Normalize(poll, selected))
	switch {
	case errors.Is(err, db.ErrNameTaken):
		return "", ErrNameTaken
	case errors.Is(err, db.ErrNotFound):
		return "", ErrPollNotFound
	case err != nil:
		return "", err
	}

	slog.Info("Ballot submitted", "poll_id", poll.ID, "choices", len(poll.Choices))
	if e.events != nil {
		e.events.Participation(poll.ID, name)
	}
	return code, nil
}

// VoterName returns the name the ballot owning code was cast under.
func (e *Engine) VoterName(ctx context.Context, code models.ManageCode) (string, error) {
	name, err := e.store.GetVoterNameByManageCode(ctx, code)
	if errors.Is(err, db.ErrNotFound) {
		return "", ErrVoterNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load voter: %w", err)
	}
	return name, nil
}

// Withdraw deletes the ballot owning code and returns the freed name.
func (e *Engine) Withdraw(ctx context.Context, code models.ManageCode) (string, error) {
	name, err := e.VoterName(ctx, code)
	if err != nil {
		return "", err
	}

	if err := e.store.DeleteVoter(ctx, code); err != nil {
		return "", err
	}
	return name, nil
}

// Normalize maps every choice of poll to 0, then marks the selected ones 1.
func Normalize(poll models.Poll, selected []models.ID) map[models.ID]int {
	selections := make(map[models.ID]int, len(poll.Choices))
	for _, c := range poll.Choices {
		selections[c.ID] = models.VoteNo
	}
	for _, id := range selected {
		if _, ok := selections[id]; ok {
			selections[id] = models.VoteYes
		}
	}
	return selections
}

func normalizeVoterName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", models.NewValidationError("voter_name", "Your name is required")
	}
	if utf8.RuneCountInString(name) > models.VoterNameMaxLength {
		return "", models.NewValidationError("voter_name", "Your name must be %d characters or fewer", models.VoterNameMaxLength)
	}
	return name, nil
}
