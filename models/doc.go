// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON. Validation rules are declared with
`validate` struct tags and checked by package validation:

  - CreatePollRequest: title, start_date, finish_date, description
  - UpdatePollRequest / PatchPollRequest: title, finish_date, description
    (start_date cannot change after creation)
  - CreateQuestionRequest: poll, text, qtype
  - UpdateQuestionRequest / PatchQuestionRequest: text, qtype
  - CreateAnswerRequest: question, text
  - SubmitAnswerRequest: question, typed_answer XOR selected_answers
  - LoginRequest, ChangePasswordRequest, CreateAccountRequest

# Domain Types

  - Poll: timed survey; active while start_date <= now < finish_date
  - Question, QuestionDetail: prompt with its answer options
  - Answer: candidate option of a choice question
  - UserAnswer: one account's response to one question
  - PassedPoll, PassedQuestion: results view with nested submissions
  - Account: login identity with a role

# Question Types

QuestionType is serialised as an integer:

	QuestionText           = 1
	QuestionOneOption      = 2
	QuestionSeveralOptions = 3

# Roles

	RoleAdmin = "admin"
	RoleUser  = "user"
*/
package models
