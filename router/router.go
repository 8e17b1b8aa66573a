// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/diddle/cliparse"
	"github.com/danielhkuo/diddle/db"
	"github.com/danielhkuo/diddle/handlers"
	"github.com/danielhkuo/diddle/middleware"
	"github.com/danielhkuo/diddle/voting"
)

// NewRouter wires every route. events may be nil.
func NewRouter(store *db.Store, engine *voting.Engine, events handlers.PollEvents, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(store, events, cfg)
	votingHandler := handlers.NewVotingHandler(engine, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Polls (public, by id)
	mux.HandleFunc("POST /polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /polls/mine", middleware.WithLogging(pollHandler.MyPolls))
	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(pollHandler.GetPoll))

	// Ballots
	mux.HandleFunc("POST /polls/{id}/votes", middleware.WithLogging(votingHandler.Vote))
	mux.HandleFunc("GET /voters/{code}", middleware.WithLogging(votingHandler.GetVoter))
	mux.HandleFunc("DELETE /voters/{code}", middleware.WithLogging(votingHandler.DeleteVoter))

	// Poll management (by manage code)
	mux.HandleFunc("GET /manage/{code}", middleware.WithLogging(pollHandler.GetManagedPoll))
	mux.HandleFunc("PUT /manage/{code}", middleware.WithLogging(pollHandler.UpdatePoll))
	mux.HandleFunc("DELETE /manage/{code}", middleware.WithLogging(pollHandler.DeletePoll))
	mux.HandleFunc("POST /manage/{code}/choices", middleware.WithLogging(pollHandler.AddChoice))
	mux.HandleFunc("DELETE /manage/{code}/choices/{choiceID}", middleware.WithLogging(pollHandler.DeleteChoice))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("diddle API v1"))
	})

	return mux
}
