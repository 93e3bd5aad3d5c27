// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the quickly-survey API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, cfg)

# Endpoints

Public:

	GET  /health
	GET  /
	POST /auth/login/ - Exchange username/password for a bearer token

Authenticated accounts (polls:read, polls:submit, results:read):

	POST /auth/logout/          - Revoke the current token
	GET  /auth/user/            - Current account
	POST /auth/password/change/ - Change own password
	GET  /poll/                 - Active polls (?id=)
	GET  /question/             - Questions of active polls (?poll=, ?id= for detail)
	GET  /answer/               - Answer options (?id=, ?question=)
	POST /polling/              - Submit an answer
	GET  /results/              - Polls the caller has answered

Administrators (polls:manage, accounts:manage):

	GET|POST                /admin/poll/
	GET|PUT|PATCH|DELETE    /admin/poll/{id}
	GET|POST                /admin/question/
	GET|PUT|PATCH|DELETE    /admin/question/{id}
	POST                    /answer/
	POST                    /admin/user/

# Handler Initialization

The router creates handler instances with dependency injection:

	pollHandler := handlers.NewPollHandler(st)
	pollingHandler := handlers.NewPollingHandler(st)

Routes other than health, root and login are wrapped in
Authenticator.Require with the capability they need.
*/
package router
