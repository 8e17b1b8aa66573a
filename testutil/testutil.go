// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/diddle/cliparse"
	"github.com/danielhkuo/diddle/db"
	"github.com/danielhkuo/diddle/models"
)

// TestBaseURL is the public base URL used by test configs
const TestBaseURL = "http://localhost:3318"

// SetupTestStore creates a fresh, migrated sqlite store in a temp directory
func SetupTestStore(t *testing.T) *db.Store {
	t.Helper()

	url := filepath.Join(t.TempDir(), "diddle_test.sqlite3")
	if err := db.Migrate(db.DialectSQLite, url); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	store, err := db.Open(context.Background(), db.DialectSQLite, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseType:  string(db.DialectSQLite),
		BaseURL:       TestBaseURL,
		LogLevel:      "error",
		Notifier:      cliparse.NotifierNone,
		NotifyDelay:   0,
		SecureCookies: false,
	}
}

// CreateTestPoll creates a poll and returns it with its manage code set
func CreateTestPoll(t *testing.T, store *db.Store, title string) models.Poll {
	t.Helper()

	poll, err := store.CreatePoll(context.Background(), models.PollInfo{
		Title:       title,
		Description: "A test poll",
		AuthorName:  "TestUser",
		AuthorEmail: "test@example.com",
	})
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return poll
}

// AddTestChoice adds a choice to a poll and returns the choice ID.
// start and end use models.DateTimeLayout.
func AddTestChoice(t *testing.T, store *db.Store, code models.ManageCode, start, end string) models.ID {
	t.Helper()

	startAt, err := time.ParseInLocation(models.DateTimeLayout, start, time.Local)
	if err != nil {
		t.Fatalf("Bad start time %q: %v", start, err)
	}
	endAt, err := time.ParseInLocation(models.DateTimeLayout, end, time.Local)
	if err != nil {
		t.Fatalf("Bad end time %q: %v", end, err)
	}

	choiceID, err := store.AddChoiceToPoll(context.Background(), code, startAt, endAt)
	if err != nil {
		t.Fatalf("Failed to create test choice: %v", err)
	}

	return choiceID
}

// SubmitTestBallot votes yes on every choice in yes and no on the rest,
// returning the ballot's manage code
func SubmitTestBallot(t *testing.T, store *db.Store, pollID models.ID, voterName string, yes ...models.ID) models.ManageCode {
	t.Helper()

	poll, err := store.GetPoll(context.Background(), pollID)
	if err != nil {
		t.Fatalf("Failed to load test poll: %v", err)
	}

	selections := make(map[models.ID]int, len(poll.Choices))
	for _, c := range poll.Choices {
		selections[c.ID] = models.VoteNo
	}
	for _, id := range yes {
		selections[id] = models.VoteYes
	}

	code, err := store.VotePoll(context.Background(), pollID, voterName, selections)
	if err != nil {
		t.Fatalf("Failed to create test ballot: %v", err)
	}

	return code
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
