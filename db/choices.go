// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/diddle/auth"
	"github.com/danielhkuo/diddle/models"
)

func queryChoices(ctx context.Context, tx *sql.Tx, pollID models.ID) ([]models.Choice, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, poll_id, start_datetime, end_datetime
		FROM choices
		WHERE poll_id = $1
		ORDER BY start_datetime, end_datetime, id
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query choices: %w", err)
	}
	defer rows.Close()

	choices := []models.Choice{}
	for rows.Next() {
		var (
			c          models.Choice
			start, end string
		)
		if err := rows.Scan(&c.ID, &c.PollID, &start, &end); err != nil {
			return nil, fmt.Errorf("failed to scan choice: %w", err)
		}
		if c.StartDatetime, err = parseTimestamp(start); err != nil {
			return nil, err
		}
		if c.EndDatetime, err = parseTimestamp(end); err != nil {
			return nil, err
		}
		choices = append(choices, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read choices: %w", err)
	}
	return choices, nil
}

// AddChoiceToPoll adds a time slot to the poll owning code. The caller has
// already checked start <= end. Returns ErrNotFound for an unknown code.
func (s *Store) AddChoiceToPoll(ctx context.Context, code models.ManageCode, start, end time.Time) (models.ID, error) {
	choiceID := auth.NewID()
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var pollID models.ID
		err := tx.QueryRowContext(ctx, `SELECT id FROM polls WHERE manage_code = $1`+s.forUpdate(), code).Scan(&pollID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to query poll: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO choices (id, poll_id, start_datetime, end_datetime)
			VALUES ($1, $2, $3, $4)
		`, choiceID, pollID, start.Format(models.DateTimeLayout), end.Format(models.DateTimeLayout))
		if err != nil {
			return fmt.Errorf("failed to insert choice: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return choiceID, nil
}

// DeleteChoice removes a choice and every vote cast on it. Ballots keep
// their voter row, so their names stay taken. Unknown ids are a no-op.
func (s *Store) DeleteChoice(ctx context.Context, choiceID models.ID) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var pollID models.ID
		err := tx.QueryRowContext(ctx, `SELECT poll_id FROM choices WHERE id = $1`, choiceID).Scan(&pollID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to query choice: %w", err)
		}
		if err := tx.QueryRowContext(ctx, `SELECT id FROM polls WHERE id = $1`+s.forUpdate(), pollID).Scan(&pollID); err != nil {
			return fmt.Errorf("failed to lock poll: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM votes WHERE choice_id = $1`, choiceID); err != nil {
			return fmt.Errorf("failed to delete votes: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM choices WHERE id = $1`, choiceID); err != nil {
			return fmt.Errorf("failed to delete choice: %w", err)
		}
		return nil
	})
}
