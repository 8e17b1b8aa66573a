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

func queryVotes(ctx context.Context, tx *sql.Tx, pollID models.ID) ([]models.Vote, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, poll_id, choice_id, voter_name, value, manage_code
		FROM votes
		WHERE poll_id = $1
		ORDER BY voter_name, choice_id
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.ID, &v.PollID, &v.ChoiceID, &v.VoterName, &v.Value, &v.ManageCode); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read votes: %w", err)
	}
	return votes, nil
}

// VotePoll stores a voter's whole ballot: one voter row plus one vote row
// per choice the poll has at commit time, all under one fresh manage code.
// Choices missing from selections are stored as no; selections naming
// choices outside the poll are ignored. If the name is already used in the
// poll nothing is written and ErrNameTaken is returned. An unknown poll is
// ErrNotFound.
func (s *Store) VotePoll(ctx context.Context, pollID models.ID, voterName string, selections map[models.ID]int) (models.ManageCode, error) {
	for choiceID, value := range selections {
		if value != models.VoteNo && value != models.VoteYes {
			return "", fmt.Errorf("invalid vote value %d for choice %s", value, choiceID)
		}
	}

	code := auth.NewManageCode()
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var id models.ID
		err := tx.QueryRowContext(ctx, `SELECT id FROM polls WHERE id = $1`+s.forUpdate(), pollID).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to query poll: %w", err)
		}

		choiceIDs, err := queryChoiceIDs(ctx, tx, pollID)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO voters (manage_code, poll_id, voter_name, created_at)
			VALUES ($1, $2, $3, $4)
		`, code, pollID, voterName, s.timestamp())
		if err != nil {
			if isUniqueViolation(err) {
				return ErrNameTaken
			}
			return fmt.Errorf("failed to insert voter: %w", err)
		}

		for _, choiceID := range choiceIDs {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO votes (id, poll_id, choice_id, voter_name, value, manage_code)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, auth.NewID(), pollID, choiceID, voterName, selections[choiceID], code)
			if err != nil {
				if isUniqueViolation(err) {
					return ErrNameTaken
				}
				return fmt.Errorf("failed to insert vote: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return code, nil
}

func queryChoiceIDs(ctx context.Context, tx *sql.Tx, pollID models.ID) ([]models.ID, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id FROM choices WHERE poll_id = $1 ORDER BY id`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query choices: %w", err)
	}
	defer rows.Close()

	ids := []models.ID{}
	for rows.Next() {
		var id models.ID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan choice: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read choices: %w", err)
	}
	return ids, nil
}

func queryVoters(ctx context.Context, tx *sql.Tx, pollID models.ID) ([]models.Voter, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT poll_id, voter_name, manage_code, created_at
		FROM voters
		WHERE poll_id = $1
		ORDER BY voter_name
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query voters: %w", err)
	}
	defer rows.Close()

	voters := []models.Voter{}
	for rows.Next() {
		var (
			v         models.Voter
			createdAt string
		)
		if err := rows.Scan(&v.PollID, &v.Name, &v.ManageCode, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan voter: %w", err)
		}
		if v.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, err
		}
		voters = append(voters, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read voters: %w", err)
	}
	return voters, nil
}

// GetVoterNameByManageCode returns the name a ballot was cast under, or
// ErrNotFound.
func (s *Store) GetVoterNameByManageCode(ctx context.Context, code models.ManageCode) (string, error) {
	var name string
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `SELECT voter_name FROM voters WHERE manage_code = $1`, code).Scan(&name)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to query voter: %w", err)
		}
		return nil
	})
	return name, err
}

// DeleteVoter removes every vote of the ballot and frees its name.
// Unknown codes are a no-op.
func (s *Store) DeleteVoter(ctx context.Context, code models.ManageCode) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM votes WHERE manage_code = $1`, code); err != nil {
			return fmt.Errorf("failed to delete votes: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM voters WHERE manage_code = $1`, code); err != nil {
			return fmt.Errorf("failed to delete voter: %w", err)
		}
		return nil
	})
}
