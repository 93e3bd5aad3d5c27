// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickly-survey/access"
	"github.com/danielhkuo/quickly-survey/auth"
	"github.com/danielhkuo/quickly-survey/cliparse"
	"github.com/danielhkuo/quickly-survey/handlers"
	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/store"
)

func NewRouter(st *store.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authn := middleware.NewAuthenticator(issuer, st)

	// Every route but health, root and login declares its capability
	route := func(pattern string, c access.Capability, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithLogging(authn.Require(c, h)))
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(st, issuer)
	pollHandler := handlers.NewPollHandler(st)
	questionHandler := handlers.NewQuestionHandler(st)
	answerHandler := handlers.NewAnswerHandler(st)
	pollingHandler := handlers.NewPollingHandler(st)
	resultsHandler := handlers.NewResultsHandler(st, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts
	mux.HandleFunc("POST /auth/login/{$}", middleware.WithLogging(authHandler.Login))
	route("POST /auth/logout/{$}", access.ReadPolls, authHandler.Logout)
	route("GET /auth/user/{$}", access.ReadPolls, authHandler.Me)
	route("POST /auth/password/change/{$}", access.ReadPolls, authHandler.ChangePassword)
	route("POST /admin/user/{$}", access.ManageAccounts, authHandler.CreateAccount)

	// Polls
	route("GET /poll/{$}", access.ReadPolls, pollHandler.ListActive)
	route("GET /admin/poll/{$}", access.ManagePolls, pollHandler.List)
	route("POST /admin/poll/{$}", access.ManagePolls, pollHandler.Create)
	route("GET /admin/poll/{id}", access.ManagePolls, pollHandler.Get)
	route("PUT /admin/poll/{id}", access.ManagePolls, pollHandler.Update)
	route("PATCH /admin/poll/{id}", access.ManagePolls, pollHandler.Patch)
	route("DELETE /admin/poll/{id}", access.ManagePolls, pollHandler.Delete)

	// Questions
	route("GET /question/{$}", access.ReadPolls, questionHandler.ListActive)
	route("GET /admin/question/{$}", access.ManagePolls, questionHandler.List)
	route("POST /admin/question/{$}", access.ManagePolls, questionHandler.Create)
	route("GET /admin/question/{id}", access.ManagePolls, questionHandler.Get)
	route("PUT /admin/question/{id}", access.ManagePolls, questionHandler.Update)
	route("PATCH /admin/question/{id}", access.ManagePolls, questionHandler.Patch)
	route("DELETE /admin/question/{id}", access.ManagePolls, questionHandler.Delete)

	// Answers
	route("GET /answer/{$}", access.ReadPolls, answerHandler.List)
	route("POST /answer/{$}", access.ManagePolls, answerHandler.Create)

	// Submissions and results
	route("POST /polling/{$}", access.SubmitAnswers, pollingHandler.Submit)
	route("GET /results/{$}", access.ReadResults, resultsHandler.List)

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-survey API v1"))
	})

	return mux
}
