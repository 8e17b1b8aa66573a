// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package notify delivers best-effort notifications to poll authors.
//
// A Queue runs tasks on one background worker with a short pause between
// them. Enqueue never blocks a request: when the queue is full the task is
// dropped and a warning is logged. Tasks still queued at shutdown are lost.
//
// The Dispatcher loads the poll a task refers to and hands a Notification to
// a Notifier:
//
//   - LogNotifier writes it to slog
//   - RedisNotifier publishes it as JSON on a redis channel
//   - Nop drops it
//
// Two kinds exist: poll_created (sent once, carries the manage link) and
// participation (sent after each ballot).
package notify
