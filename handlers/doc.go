// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Survey API.

# Handler Types

Each handler is a struct holding the store. ResultsHandler also keeps the
Config for its disclosure setting and AuthHandler the token issuer:

  - PollHandler: Active poll listing and admin poll CRUD
  - QuestionHandler: Question listing, detail and admin CRUD
  - AnswerHandler: Candidate answer listing and creation
  - PollingHandler: UserAnswer submission
  - ResultsHandler: Answered polls with nested user answers
  - AuthHandler: Login, logout, current account, password change, account creation

Handlers are created via constructor functions:

	pollHandler := handlers.NewPollHandler(st)

Authentication and capability checks happen in middleware before a handler
runs. Handlers read the caller with access.FromContext.

# Visibility

A poll is active while start_date <= now < finish_date. Public listings only
return active polls and their questions. Question detail answers 404 when the
poll is inactive or when the poll query parameter names a different poll:

	GET /question/?id={question}&poll={poll}

# Submission

POST /polling/ validates in this order:

 1. the poll must be active
 2. exactly one of typed_answer and selected_answers
 3. TEXT questions need a non-empty typed_answer
 4. choice questions need at least one selected answer
 5. ONE_OPTION questions take exactly one selection
 6. selected answers must belong to the question

The submitter is always the authenticated account.

# Errors

Handlers return apperr values and write them with middleware.WriteError, which
maps the kind to a status code and an ErrorResponse body.
*/
package handlers
