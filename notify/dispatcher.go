// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"log/slog"

	"github.com/danielhkuo/diddle/models"
)

// PollLoader loads a poll by id. *db.Store satisfies it.
type PollLoader interface {
	GetPoll(ctx context.Context, id models.ID) (models.Poll, error)
}

// Dispatcher turns poll events into queued notifications. Polls whose author
// left no email produce none. Errors are logged and never reach the caller.
type Dispatcher struct {
	queue    *Queue
	notifier Notifier
	polls    PollLoader
	baseURL  string
}

func NewDispatcher(queue *Queue, notifier Notifier, polls PollLoader, baseURL string) *Dispatcher {
	return &Dispatcher{queue: queue, notifier: notifier, polls: polls, baseURL: baseURL}
}

// PollCreated tells the author their poll exists, with its links.
func (d *Dispatcher) PollCreated(pollID models.ID) {
	d.enqueue(KindPollCreated, pollID, "")
}

// Participation tells the author someone voted.
func (d *Dispatcher) Participation(pollID models.ID, voterName string) {
	d.enqueue(KindParticipation, pollID, voterName)
}

func (d *Dispatcher) enqueue(kind Kind, pollID models.ID, voterName string) {
	d.queue.Enqueue(string(kind), func(ctx context.Context) {
		poll, err := d.polls.GetPoll(ctx, pollID)
		if err != nil {
			slog.Error("Failed to load poll for notification", "kind", kind, "poll_id", pollID, "error", err)
			return
		}
		if poll.AuthorEmail == "" {
			slog.Debug("Skipping notification, author left no email", "kind", kind, "poll_id", pollID)
			return
		}

		n := Notification{
			Kind:        kind,
			PollID:      poll.ID,
			PollTitle:   poll.Title,
			AuthorName:  poll.AuthorName,
			AuthorEmail: poll.AuthorEmail,
			VoterName:   voterName,
			ShareURL:    poll.ShareURL(d.baseURL),
		}
		// Only the creation notice carries the organizer's link.
		if kind == KindPollCreated {
			n.ManageURL = poll.ManageURL(d.baseURL)
		}

		if err := d.notifier.Notify(ctx, n); err != nil {
			slog.Error("Failed to send notification", "kind", kind, "poll_id", pollID, "error", err)
		}
	})
}
