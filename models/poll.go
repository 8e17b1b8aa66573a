// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// BuildPoll nests votes under their choices and attaches the poll's voters.
// Choice and vote order are kept as given, so callers pass choices by start
// time and votes by voter name.
func BuildPoll(poll Poll, choices []Choice, votes []Vote, voters []Voter) Poll {
	byChoice := make(map[ID][]Vote, len(choices))
	for _, v := range votes {
		byChoice[v.ChoiceID] = append(byChoice[v.ChoiceID], v)
	}

	poll.Choices = make([]Choice, 0, len(choices))
	for _, c := range choices {
		c.Votes = byChoice[c.ID]
		if c.Votes == nil {
			c.Votes = []Vote{}
		}
		poll.Choices = append(poll.Choices, c)
	}

	poll.Voters = voters
	if poll.Voters == nil {
		poll.Voters = []Voter{}
	}
	return poll
}

// EndsOnSameDay reports whether the choice starts and ends on the same calendar day.
func (c Choice) EndsOnSameDay() bool {
	sy, sm, sd := c.StartDatetime.Date()
	ey, em, ed := c.EndDatetime.Date()
	return sy == ey && sm == em && sd == ed
}

// EndsAtSameTime reports whether start and end are the same instant.
func (c Choice) EndsAtSameTime() bool {
	return c.StartDatetime.Equal(c.EndDatetime)
}

func (c Choice) VotesWithValue(value int) []Vote {
	out := []Vote{}
	for _, v := range c.Votes {
		if v.Value == value {
			out = append(out, v)
		}
	}
	return out
}

// YesCount sums vote values on the choice.
func (c Choice) YesCount() int {
	n := 0
	for _, v := range c.Votes {
		n += v.Value
	}
	return n
}

// VoterNames returns the name of every ballot in the poll, sorted. Ballots
// without votes are included since they still hold their name.
func (p Poll) VoterNames() []string {
	names := make([]string, 0, len(p.Voters))
	for _, v := range p.Voters {
		names = append(names, v.Name)
	}
	sort.Strings(names)
	return names
}

// Selection returns the value voterName gave to choiceID, if any.
func (p Poll) Selection(voterName string, choiceID ID) (int, bool) {
	for _, c := range p.Choices {
		if c.ID != choiceID {
			continue
		}
		for _, v := range c.Votes {
			if v.VoterName == voterName {
				return v.Value, true
			}
		}
	}
	return 0, false
}

// HasChoice reports whether choiceID belongs to the poll.
func (p Poll) HasChoice(choiceID ID) bool {
	for _, c := range p.Choices {
		if c.ID == choiceID {
			return true
		}
	}
	return false
}

// ManagedVoters maps voter names to ballot codes the caller holds.
func (p Poll) ManagedVoters(codes map[ManageCode]struct{}) map[string]ManageCode {
	out := make(map[string]ManageCode)
	for _, v := range p.Voters {
		if _, ok := codes[v.ManageCode]; ok {
			out[v.Name] = v.ManageCode
		}
	}
	return out
}

func (p Poll) PublishedLabel() string {
	return "Created on " + p.PubDate.Format("02.01.2006") + " at " + p.PubDate.Format("15:04")
}

// PublishedAgo renders the publish time relative to now ("3 hours ago").
func (p Poll) PublishedAgo(now time.Time) string {
	return humanize.RelTime(p.PubDate, now, "ago", "from now")
}

func (p Poll) ShareURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/polls/" + string(p.ID)
}

func (p Poll) ManageURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/manage/" + string(p.ManageCode)
}
