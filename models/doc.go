// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, request and response types.

# Identifiers

ID names a poll, choice or vote and appears in share URLs. ManageCode is a
secret capability for a poll or a ballot. They are distinct types so one
cannot be passed where the other is expected.

# Domain Types

  - Poll: title, author, publish date, whole-day flag, ordered Choices
  - Choice: a start/end time slot with its Votes
  - Vote: one voter's yes (1) or no (0) on one choice

BuildPoll nests loaded votes under their choices. Helpers such as
EndsOnSameDay, VotesWithValue, YesCount and VoterNames are pure functions
of the loaded data.

# Timestamps

All timestamps use DateTimeLayout ("2006-01-02 15:04:05"), local time.

# Errors

ValidationError carries a user-facing message for a bad field.
*/
package models
