// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/diddle/auth"
	"github.com/danielhkuo/diddle/testutil"
	"github.com/danielhkuo/diddle/voting"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	store := testutil.SetupTestStore(t)
	return NewRouter(store, voting.NewEngine(store, nil), nil, testutil.GetTestConfig())
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestHealthEndpoint_DatabaseDown(t *testing.T) {
	store := testutil.SetupTestStore(t)
	mux := NewRouter(store, voting.NewEngine(store, nil), nil, testutil.GetTestConfig())
	store.Close()

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}
}

func TestRootEndpoint(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "diddle API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestUnknownPath(t *testing.T) {
	mux := newTestMux(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown path, got %d", w.Code)
	}
}

func TestRouteExistence(t *testing.T) {
	mux := newTestMux(t)
	id := string(auth.NewID())
	code := string(auth.NewManageCode())

	// Routes must reach a handler; 400 and 404 from the handler are fine
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},

		{"POST", "/polls"},
		{"GET", "/polls/mine"},
		{"GET", "/polls/" + id},
		{"POST", "/polls/" + id + "/votes"},

		{"GET", "/voters/" + code},
		{"DELETE", "/voters/" + code},

		{"GET", "/manage/" + code},
		{"PUT", "/manage/" + code},
		{"DELETE", "/manage/" + code},
		{"POST", "/manage/" + code + "/choices"},
		{"DELETE", "/manage/" + code + "/choices/" + id},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux := newTestMux(t)
	code := string(auth.NewManageCode())

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"DELETE", "/polls/mine"},
		{"GET", "/polls/x/votes"},
		{"POST", "/manage/" + code},
		{"GET", "/manage/" + code + "/choices"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestPathParameterExtraction(t *testing.T) {
	store := testutil.SetupTestStore(t)
	mux := NewRouter(store, voting.NewEngine(store, nil), nil, testutil.GetTestConfig())
	poll := testutil.CreateTestPoll(t, store, "Routing")

	t.Run("poll id", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", "/polls/"+string(poll.ID), nil))
		testutil.AssertStatus(t, w, http.StatusOK)
	})

	t.Run("mine is not an id", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", "/polls/mine", nil))
		testutil.AssertStatus(t, w, http.StatusOK)
	})

	t.Run("manage code", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", "/manage/"+string(poll.ManageCode), nil))
		testutil.AssertStatus(t, w, http.StatusOK)
	})
}
