// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package validation checks request bodies before anything is persisted.

# Field Rules

Field-level rules live in `validate` struct tags on the request types in
package models and are checked with go-playground/validator:

	if err := validation.Struct(&req); err != nil {
		middleware.WriteError(w, err)
		return
	}

Failures become apperr validation errors with a per-field map keyed by
JSON name. A finish_date that does not come after start_date reports
"finish must occur after start".

# Submissions

Submission runs the answer rules in order and returns a Payload, which is
either TextPayload or ChoicePayload:

 1. the poll must be active
 2. exactly one of typed_answer and selected_answers is set
 3. TEXT questions need typed_answer
 4. choice questions need selected_answers
 5. ONE_OPTION questions take a single option
 6. every selected option belongs to the question
*/
package validation
