// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/diddle/models"
)

var (
	ErrInvalidID   = errors.New("invalid id")
	ErrInvalidCode = errors.New("invalid manage code")
)

// NewID creates a random UUID identifier for a poll, choice or vote
func NewID() models.ID {
	return models.ID(uuid.NewString())
}

// NewManageCode creates an unguessable capability code.
// Poll codes and ballot codes come from the same generator
func NewManageCode() models.ManageCode {
	return models.ManageCode(uuid.NewString())
}

// ParseID checks that s has UUID form before it is used as an identifier
func ParseID(s string) (models.ID, error) {
	u, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", ErrInvalidID
	}
	return models.ID(u.String()), nil
}

// ParseManageCode checks that s has UUID form before it is used as a code
func ParseManageCode(s string) (models.ManageCode, error) {
	u, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", ErrInvalidCode
	}
	return models.ManageCode(u.String()), nil
}
