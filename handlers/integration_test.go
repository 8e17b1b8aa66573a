// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/diddle/middleware"
	"github.com/danielhkuo/diddle/models"
	"github.com/danielhkuo/diddle/testutil"
)

// TestFullPollWorkflow tests the complete end-to-end workflow:
// 1. Create poll
// 2. Add time slots
// 3. Voters submit ballots
// 4. A duplicate name is rejected
// 5. Check the tally
// 6. A voter withdraws and the tally follows
// 7. The organizer removes a slot
// 8. The organizer deletes the poll
func TestFullPollWorkflow(t *testing.T) {
	env := setupHandlers(t)

	// Step 1: Create a poll
	createReq := models.PollInfoRequest{
		Title:       "Integration Test Poll",
		Description: "When can everyone meet?",
		AuthorName:  "IntegrationTester",
		AuthorEmail: "tester@example.com",
	}
	w := httptest.NewRecorder()
	env.polls.CreatePoll(w, testutil.MakeRequest("POST", "/polls", createReq, nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 1 - Create poll failed: %d - %s", w.Code, w.Body.String())
	}

	var created models.CreatePollResponse
	testutil.AssertJSON(t, w, &created)
	pollID := string(created.PollID)
	code := string(created.ManageCode)
	t.Logf("Step 1 - Created poll: %s", pollID)

	// Step 2: Add 3 slots
	slots := [][2]string{
		{"2026-10-05 18:00", "2026-10-05 20:00"},
		{"2026-10-06 18:00", "2026-10-06 20:00"},
		{"2026-10-07", "2026-10-07"},
	}
	choiceIDs := make([]string, 0, len(slots))
	for _, slot := range slots {
		body := models.AddChoiceRequest{StartDatetime: slot[0], EndDatetime: slot[1]}
		w := httptest.NewRecorder()
		env.polls.AddChoice(w, withCode("POST", "/manage/"+code+"/choices", body, code))
		if w.Code != http.StatusCreated {
			t.Fatalf("Step 2 - Add choice %v failed: %d - %s", slot, w.Code, w.Body.String())
		}
		var resp models.AddChoiceResponse
		testutil.AssertJSON(t, w, &resp)
		choiceIDs = append(choiceIDs, string(resp.ChoiceID))
	}
	t.Logf("Step 2 - Added %d choices", len(choiceIDs))

	// Step 3: 3 voters submit ballots
	ballots := map[string][]string{
		"Alice":   {choiceIDs[0], choiceIDs[1]},
		"Bob":     {choiceIDs[1]},
		"Charlie": {choiceIDs[1], choiceIDs[2]},
	}
	voterCodes := make(map[string]models.ManageCode)
	for name, choices := range ballots {
		w := httptest.NewRecorder()
		env.voting.Vote(w, voteRequest(pollID, models.VoteRequest{VoterName: name, Choices: choices}))
		if w.Code != http.StatusCreated {
			t.Fatalf("Step 3 - Vote by %s failed: %d - %s", name, w.Code, w.Body.String())
		}
		var resp models.VoteResponse
		testutil.AssertJSON(t, w, &resp)
		voterCodes[name] = resp.ManageCode
	}

	// Step 4: Duplicate name
	w = httptest.NewRecorder()
	env.voting.Vote(w, voteRequest(pollID, models.VoteRequest{VoterName: "Bob", Choices: choiceIDs}))
	if w.Code != http.StatusConflict {
		t.Fatalf("Step 4 - Expected 409 for duplicate name, got %d", w.Code)
	}

	// Step 5: Tally
	view := getPollView(t, env, pollID, nil)
	if len(view.MostVotedIDs) != 1 || string(view.MostVotedIDs[0]) != choiceIDs[1] {
		t.Errorf("Step 5 - Expected choice 2 to win, got %v", view.MostVotedIDs)
	}
	if len(view.VoterNames) != 3 {
		t.Errorf("Step 5 - Expected 3 voters, got %v", view.VoterNames)
	}

	// Step 6: Bob and Charlie withdraw, so choice 1 ties choice 2
	for _, name := range []string{"Bob", "Charlie"} {
		voterCode := string(voterCodes[name])
		w = httptest.NewRecorder()
		env.voting.DeleteVoter(w, withCode("DELETE", "/voters/"+voterCode, nil, voterCode))
		if w.Code != http.StatusOK {
			t.Fatalf("Step 6 - Withdraw %s failed: %d", name, w.Code)
		}
	}
	aliceCookie := &http.Cookie{Name: middleware.VoterCookiePrefix + string(voterCodes["Alice"]), Value: "1"}
	view = getPollView(t, env, pollID, aliceCookie)
	if len(view.MostVotedIDs) != 2 {
		t.Errorf("Step 6 - Expected a two-way tie, got %v", view.MostVotedIDs)
	}
	if view.ManagedVoters["Alice"] != voterCodes["Alice"] {
		t.Errorf("Step 6 - Expected Alice's ballot to be manageable, got %v", view.ManagedVoters)
	}

	// Step 7: Remove the first slot
	w = httptest.NewRecorder()
	req := withCode("DELETE", "/manage/"+code+"/choices/"+choiceIDs[0], nil, code)
	req.SetPathValue("choiceID", choiceIDs[0])
	env.polls.DeleteChoice(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("Step 7 - Delete choice failed: %d", w.Code)
	}
	view = getPollView(t, env, pollID, nil)
	if len(view.Poll.Choices) != 2 || len(view.MostVotedIDs) != 1 {
		t.Errorf("Step 7 - Unexpected poll after removing a slot: %d choices, winners %v", len(view.Poll.Choices), view.MostVotedIDs)
	}

	// Step 8: Delete the poll
	w = httptest.NewRecorder()
	env.polls.DeletePoll(w, withCode("DELETE", "/manage/"+code, nil, code))
	if w.Code != http.StatusNoContent {
		t.Fatalf("Step 8 - Delete poll failed: %d", w.Code)
	}
	w = httptest.NewRecorder()
	req = testutil.MakeRequest("GET", "/polls/"+pollID, nil, nil)
	req.SetPathValue("id", pollID)
	env.polls.GetPoll(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func getPollView(t *testing.T, env testEnv, pollID string, cookie *http.Cookie) models.PollView {
	t.Helper()
	req := testutil.MakeRequest("GET", "/polls/"+pollID, nil, nil)
	req.SetPathValue("id", pollID)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	env.polls.GetPoll(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var view models.PollView
	testutil.AssertJSON(t, w, &view)
	return view
}

// TestAllZeroTally verifies that a poll nobody said yes to has no winner
func TestAllZeroTally(t *testing.T) {
	env := setupHandlers(t)
	poll := testutil.CreateTestPoll(t, env.store, "Nobody can")
	testutil.AddTestChoice(t, env.store, poll.ManageCode, "2026-07-01 10:00:00", "2026-07-01 11:00:00")
	testutil.SubmitTestBallot(t, env.store, poll.ID, "Nope")

	view := getPollView(t, env, string(poll.ID), nil)
	if len(view.MostVotedIDs) != 0 {
		t.Errorf("Expected no most-voted choices, got %v", view.MostVotedIDs)
	}
	if view.Summary[0].MostVoted {
		t.Error("Expected summary to flag nothing")
	}
}
