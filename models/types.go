// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// DateTimeLayout is the storage and wire format of every timestamp.
// Local time, no timezone.
const DateTimeLayout = "2006-01-02 15:04:05"

// Field limits
const (
	TitleMaxLength       = 100
	DescriptionMaxLength = 1000
	AuthorNameMaxLength  = 100
	AuthorEmailMaxLength = 100
	VoterNameMaxLength   = 100
)

// Vote values
const (
	VoteNo  = 0
	VoteYes = 1
)

// ID identifies a poll, choice or vote. It is public (shared in URLs).
type ID string

// ManageCode is a secret capability granting edit/delete rights over a poll
// or a ballot. Never interchangeable with ID.
type ManageCode string

// Domain types

type Poll struct {
	ID          ID         `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	PubDate     time.Time  `json:"pub_date"`
	AuthorName  string     `json:"author_name"`
	AuthorEmail string     `json:"author_email"`
	ManageCode  ManageCode `json:"-"` // Never expose in JSON
	IsWholeDay  bool       `json:"is_whole_day"`
	Choices     []Choice   `json:"choices"`
	Voters      []Voter    `json:"-"`
}

type Choice struct {
	ID            ID        `json:"id"`
	PollID        ID        `json:"poll_id"`
	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`
	Votes         []Vote    `json:"votes"`
}

type Vote struct {
	ID         ID         `json:"id"`
	PollID     ID         `json:"poll_id"`
	ChoiceID   ID         `json:"choice_id"`
	VoterName  string     `json:"voter_name"`
	Value      int        `json:"value"`
	ManageCode ManageCode `json:"-"` // Never expose in JSON
}

// Voter owns a name within a poll. It exists for every ballot, including
// ballots that currently hold no votes.
type Voter struct {
	PollID     ID
	Name       string
	ManageCode ManageCode
	CreatedAt  time.Time
}

// PollInfo holds the organizer-editable fields of a poll.
type PollInfo struct {
	Title       string
	Description string
	AuthorName  string
	AuthorEmail string
	IsWholeDay  bool
}

// Request types

type PollInfoRequest struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
	AuthorName  string `json:"author_name" validate:"required,max=100"`
	AuthorEmail string `json:"author_email" validate:"omitempty,max=100,email"`
	IsWholeDay  bool   `json:"is_whole_day"`
}

type AddChoiceRequest struct {
	StartDatetime string `json:"start_datetime" validate:"required"`
	EndDatetime   string `json:"end_datetime" validate:"required"`
}

type VoteRequest struct {
	VoterName string   `json:"voter_name" validate:"required,max=100"`
	Choices   []string `json:"choices"`
}

// Response types

type CreatePollResponse struct {
	PollID     ID         `json:"poll_id"`
	ManageCode ManageCode `json:"manage_code"`
	ShareURL   string     `json:"share_url"`
	ManageURL  string     `json:"manage_url"`
}

type UpdatePollResponse struct {
	PollID ID `json:"poll_id"`
}

type AddChoiceResponse struct {
	ChoiceID ID `json:"choice_id"`
}

type VoteResponse struct {
	ManageCode ManageCode `json:"manage_code"`
}

type VoterResponse struct {
	VoterName string `json:"voter_name"`
}

// ChoiceSummary is one row of a poll's tally.
type ChoiceSummary struct {
	ChoiceID  ID   `json:"choice_id"`
	YesCount  int  `json:"yes_count"`
	MostVoted bool `json:"most_voted"`
}

type PollView struct {
	Poll          Poll                  `json:"poll"`
	Summary       []ChoiceSummary       `json:"summary"`
	MostVotedIDs  []ID                  `json:"most_voted_choice_ids"`
	VoterNames    []string              `json:"voter_names"`
	ManagedVoters map[string]ManageCode `json:"managed_voters"`
	ShareURL      string                `json:"share_url"`
}

type ManagePollResponse struct {
	Poll         Poll   `json:"poll"`
	LastChoiceID *ID    `json:"last_choice_id,omitempty"`
	ShareURL     string `json:"share_url"`
	ManageURL    string `json:"manage_url"`
}

type PollListItem struct {
	ID           ID        `json:"id"`
	Title        string    `json:"title"`
	AuthorName   string    `json:"author_name"`
	PubDate      time.Time `json:"pub_date"`
	Published    string    `json:"published"`
	PublishedAgo string    `json:"published_ago"`
	ShareURL     string    `json:"share_url"`
	ManageURL    string    `json:"manage_url"`
}

type MyPollsResponse struct {
	Polls []PollListItem `json:"polls"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
