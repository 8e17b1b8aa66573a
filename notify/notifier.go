// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/danielhkuo/diddle/models"
)

// Kind names what happened to a poll.
type Kind string

const (
	KindPollCreated   Kind = "poll_created"
	KindParticipation Kind = "participation"
)

// Notification is addressed to the poll's author.
type Notification struct {
	Kind        Kind      `json:"kind"`
	PollID      models.ID `json:"poll_id"`
	PollTitle   string    `json:"poll_title"`
	AuthorName  string    `json:"author_name"`
	AuthorEmail string    `json:"author_email"`
	VoterName   string    `json:"voter_name,omitempty"`
	ShareURL    string    `json:"share_url"`
	ManageURL   string    `json:"manage_url,omitempty"`
}

// Notifier delivers a notification somewhere.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier writes notifications to the structured log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, n Notification) error {
	slog.Info("Poll notification",
		"kind", n.Kind,
		"poll_id", n.PollID,
		"title", n.PollTitle,
		"to", n.AuthorEmail,
		"voter", n.VoterName,
	)
	return nil
}

// Nop discards every notification.
type Nop struct{}

func (Nop) Notify(context.Context, Notification) error { return nil }

// DefaultChannel is the redis channel RedisNotifier publishes on.
const DefaultChannel = "diddle:notifications"

// RedisNotifier publishes notifications as JSON on a redis channel, where an
// external mailer picks them up.
type RedisNotifier struct {
	client  *redis.Client
	channel string
}

// NewRedisNotifier connects to the redis server at url (redis://...).
func NewRedisNotifier(url, channel string) (*RedisNotifier, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisNotifier{client: redis.NewClient(opts), channel: channel}, nil
}

func (r *RedisNotifier) Notify(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}
	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

// Ping checks the redis connection.
func (r *RedisNotifier) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisNotifier) Close() error {
	return r.client.Close()
}
