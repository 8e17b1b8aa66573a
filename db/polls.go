// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/diddle/auth"
	"github.com/danielhkuo/diddle/models"
)

const pollColumns = `id, title, description, pub_date, author_name, author_email, manage_code, whole_day`

type scanner interface {
	Scan(dest ...any) error
}

func scanPoll(row scanner) (models.Poll, error) {
	var (
		poll        models.Poll
		description sql.NullString
		authorEmail sql.NullString
		pubDate     string
	)
	err := row.Scan(&poll.ID, &poll.Title, &description, &pubDate,
		&poll.AuthorName, &authorEmail, &poll.ManageCode, &poll.IsWholeDay)
	if err != nil {
		return models.Poll{}, err
	}
	poll.Description = description.String
	poll.AuthorEmail = authorEmail.String
	if poll.PubDate, err = parseTimestamp(pubDate); err != nil {
		return models.Poll{}, err
	}
	poll.Choices = []models.Choice{}
	poll.Voters = []models.Voter{}
	return poll, nil
}

// CreatePoll inserts a new poll. Its id, manage code and publish date are
// assigned here.
func (s *Store) CreatePoll(ctx context.Context, info models.PollInfo) (models.Poll, error) {
	poll := models.Poll{
		ID:          auth.NewID(),
		Title:       info.Title,
		Description: info.Description,
		AuthorName:  info.AuthorName,
		AuthorEmail: info.AuthorEmail,
		ManageCode:  auth.NewManageCode(),
		IsWholeDay:  info.IsWholeDay,
		Choices:     []models.Choice{},
		Voters:      []models.Voter{},
	}
	pubDate := s.timestamp()

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO polls (`+pollColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, poll.ID, poll.Title, nullString(poll.Description), pubDate,
			poll.AuthorName, nullString(poll.AuthorEmail), poll.ManageCode, poll.IsWholeDay)
		return err
	})
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to create poll: %w", err)
	}

	poll.PubDate, err = parseTimestamp(pubDate)
	if err != nil {
		return models.Poll{}, err
	}
	return poll, nil
}

// GetPoll loads a poll with its choices (by start time), their votes
// (by voter name) and every ballot's voter. Returns ErrNotFound if the id is unknown.
func (s *Store) GetPoll(ctx context.Context, id models.ID) (models.Poll, error) {
	var poll models.Poll
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		poll, err = loadPoll(ctx, tx, `SELECT `+pollColumns+` FROM polls WHERE id = $1`, string(id))
		return err
	})
	return poll, err
}

// GetPollByCode is GetPoll keyed by the poll's manage code.
func (s *Store) GetPollByCode(ctx context.Context, code models.ManageCode) (models.Poll, error) {
	var poll models.Poll
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		poll, err = loadPoll(ctx, tx, `SELECT `+pollColumns+` FROM polls WHERE manage_code = $1`, string(code))
		return err
	})
	return poll, err
}

func loadPoll(ctx context.Context, tx *sql.Tx, query, key string) (models.Poll, error) {
	poll, err := scanPoll(tx.QueryRowContext(ctx, query, key))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Poll{}, ErrNotFound
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to query poll: %w", err)
	}

	choices, err := queryChoices(ctx, tx, poll.ID)
	if err != nil {
		return models.Poll{}, err
	}

	votes, err := queryVotes(ctx, tx, poll.ID)
	if err != nil {
		return models.Poll{}, err
	}

	voters, err := queryVoters(ctx, tx, poll.ID)
	if err != nil {
		return models.Poll{}, err
	}

	return models.BuildPoll(poll, choices, votes, voters), nil
}

// GetPollsByCodes lists the polls owning the given manage codes, newest
// first. Choices are not loaded. No codes means no query.
func (s *Store) GetPollsByCodes(ctx context.Context, codes []models.ManageCode) ([]models.Poll, error) {
	polls := []models.Poll{}

	seen := make(map[models.ManageCode]struct{}, len(codes))
	args := make([]any, 0, len(codes))
	for _, code := range codes {
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		args = append(args, string(code))
	}
	if len(args) == 0 {
		return polls, nil
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `
			SELECT `+pollColumns+`
			FROM polls
			WHERE manage_code IN (`+placeholders(1, len(args))+`)
			ORDER BY pub_date DESC, id
		`, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			poll, err := scanPoll(rows)
			if err != nil {
				return err
			}
			polls = append(polls, poll)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query polls by codes: %w", err)
	}
	return polls, nil
}

// UpdatePollInfo overwrites the editable fields of the poll owning code and
// returns its id, or ErrNotFound.
func (s *Store) UpdatePollInfo(ctx context.Context, code models.ManageCode, info models.PollInfo) (models.ID, error) {
	var id models.ID
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			UPDATE polls
			SET title = $1, description = $2, author_name = $3, author_email = $4, whole_day = $5
			WHERE manage_code = $6
		`, info.Title, nullString(info.Description), info.AuthorName,
			nullString(info.AuthorEmail), info.IsWholeDay, code)
		if err != nil {
			return fmt.Errorf("failed to update poll: %w", err)
		}

		err = tx.QueryRowContext(ctx, `SELECT id FROM polls WHERE manage_code = $1`, code).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to query poll: %w", err)
		}
		return nil
	})
	return id, err
}

// DeletePoll removes the poll owning code together with its choices,
// voters and votes. Unknown codes are a no-op.
func (s *Store) DeletePoll(ctx context.Context, code models.ManageCode) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var id models.ID
		err := tx.QueryRowContext(ctx, `SELECT id FROM polls WHERE manage_code = $1`, code).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to query poll: %w", err)
		}

		for _, stmt := range []string{
			`DELETE FROM votes WHERE poll_id = $1`,
			`DELETE FROM voters WHERE poll_id = $1`,
			`DELETE FROM choices WHERE poll_id = $1`,
			`DELETE FROM polls WHERE id = $1`,
		} {
			if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
				return fmt.Errorf("failed to delete poll: %w", err)
			}
		}
		return nil
	})
}
