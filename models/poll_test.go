package models

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func at(t *testing.T, value string) time.Time {
	t.Helper()
	tm, err := time.ParseInLocation(DateTimeLayout, value, time.Local)
	if err != nil {
		t.Fatalf("bad time %q: %v", value, err)
	}
	return tm
}

func TestBuildPoll(t *testing.T) {
	poll := Poll{ID: "p1", Title: "Lunch"}
	choices := []Choice{
		{ID: "c1", PollID: "p1"},
		{ID: "c2", PollID: "p1"},
		{ID: "c3", PollID: "p1"},
	}
	votes := []Vote{
		{ID: "v1", ChoiceID: "c1", VoterName: "Ann", Value: 1},
		{ID: "v2", ChoiceID: "c2", VoterName: "Ann", Value: 0},
		{ID: "v3", ChoiceID: "c1", VoterName: "Ben", Value: 0},
		{ID: "v4", ChoiceID: "c2", VoterName: "Ben", Value: 1},
	}

	voters := []Voter{{PollID: "p1", Name: "Ann"}, {PollID: "p1", Name: "Ben"}}

	got := BuildPoll(poll, choices, votes, voters)

	if len(got.Choices) != 3 {
		t.Fatalf("Expected 3 choices, got %d", len(got.Choices))
	}
	var c1Votes []ID
	for _, v := range got.Choices[0].Votes {
		c1Votes = append(c1Votes, v.ID)
	}
	if diff := cmp.Diff([]ID{"v1", "v3"}, c1Votes); diff != "" {
		t.Errorf("c1 votes mismatch (-want +got):\n%s", diff)
	}
	if got.Choices[2].Votes == nil || len(got.Choices[2].Votes) != 0 {
		t.Errorf("Expected empty, non-nil votes for c3, got %#v", got.Choices[2].Votes)
	}
	if len(got.Voters) != 2 {
		t.Errorf("Expected 2 voters, got %d", len(got.Voters))
	}

	if empty := BuildPoll(poll, nil, nil, nil); empty.Voters == nil || empty.Choices == nil {
		t.Errorf("Expected non-nil choices and voters, got %#v", empty)
	}
}

func TestChoiceDerivations(t *testing.T) {
	tests := []struct {
		name         string
		start, end   string
		sameDay      bool
		sameDatetime bool
	}{
		{"same instant", "2026-04-01 10:00:00", "2026-04-01 10:00:00", true, true},
		{"same day", "2026-04-01 10:00:00", "2026-04-01 12:30:00", true, false},
		{"whole day", "2026-04-01 00:00:00", "2026-04-01 23:59:00", true, false},
		{"overnight", "2026-04-01 22:00:00", "2026-04-02 02:00:00", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Choice{StartDatetime: at(t, tt.start), EndDatetime: at(t, tt.end)}
			if got := c.EndsOnSameDay(); got != tt.sameDay {
				t.Errorf("EndsOnSameDay() = %v, want %v", got, tt.sameDay)
			}
			if got := c.EndsAtSameTime(); got != tt.sameDatetime {
				t.Errorf("EndsAtSameTime() = %v, want %v", got, tt.sameDatetime)
			}
		})
	}
}

func TestVotesWithValue(t *testing.T) {
	c := Choice{Votes: []Vote{
		{VoterName: "Ann", Value: 1},
		{VoterName: "Ben", Value: 0},
		{VoterName: "Cat", Value: 1},
	}}

	if n := len(c.VotesWithValue(VoteYes)); n != 2 {
		t.Errorf("VotesWithValue(yes) = %d votes, want 2", n)
	}
	if n := len(c.VotesWithValue(VoteNo)); n != 1 {
		t.Errorf("VotesWithValue(no) = %d votes, want 1", n)
	}
	if c.YesCount() != 2 {
		t.Errorf("YesCount() = %d, want 2", c.YesCount())
	}
}

func TestPollVoterNamesAndManagedVoters(t *testing.T) {
	// Max holds a ballot with no vote rows
	poll := Poll{
		Choices: []Choice{
			{ID: "c1", Votes: []Vote{{VoterName: "Zoe", ManageCode: "z"}, {VoterName: "Ann", ManageCode: "a"}}},
			{ID: "c2", Votes: []Vote{{VoterName: "Ann", ManageCode: "a"}, {VoterName: "Zoe", ManageCode: "z"}}},
		},
		Voters: []Voter{
			{Name: "Zoe", ManageCode: "z"},
			{Name: "Max", ManageCode: "m"},
			{Name: "Ann", ManageCode: "a"},
		},
	}

	if diff := cmp.Diff([]string{"Ann", "Max", "Zoe"}, poll.VoterNames()); diff != "" {
		t.Errorf("VoterNames() mismatch (-want +got):\n%s", diff)
	}

	managed := poll.ManagedVoters(map[ManageCode]struct{}{"z": {}, "m": {}, "unknown": {}})
	if diff := cmp.Diff(map[string]ManageCode{"Zoe": "z", "Max": "m"}, managed); diff != "" {
		t.Errorf("ManagedVoters() mismatch (-want +got):\n%s", diff)
	}

	if !poll.HasChoice("c2") || poll.HasChoice("c9") {
		t.Error("HasChoice() gave the wrong answer")
	}
}

func TestPollLabelsAndURLs(t *testing.T) {
	p := Poll{ID: "pid", ManageCode: "code", PubDate: at(t, "2026-02-03 04:05:06")}

	if got := p.PublishedLabel(); got != "Created on 03.02.2026 at 04:05" {
		t.Errorf("PublishedLabel() = %q", got)
	}
	if got := p.PublishedAgo(p.PubDate.Add(3 * time.Hour)); got != "3 hours ago" {
		t.Errorf("PublishedAgo() = %q, want %q", got, "3 hours ago")
	}
	if got := p.ShareURL("http://localhost:3318/"); got != "http://localhost:3318/polls/pid" {
		t.Errorf("ShareURL() = %q", got)
	}
	if got := p.ManageURL("https://diddle.example"); got != "https://diddle.example/manage/code" {
		t.Errorf("ManageURL() = %q", got)
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("title", "must be %d characters or fewer", 100)
	if err.Error() != "title: must be 100 characters or fewer" {
		t.Errorf("Error() = %q", err.Error())
	}
}
