// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/testutil"
	"github.com/danielhkuo/quickly-survey/validation"
)

func TestSubmitAnswer(t *testing.T) {
	env := newTestEnv(t)
	handler := NewPollingHandler(env.store)
	user := testutil.CreateTestAccount(t, env.db, "alice", models.RoleUser)

	start, finish := testutil.ActiveWindow()
	activePoll := testutil.CreateTestPoll(t, env.db, "Active", start, finish)
	textQ := testutil.AddTestQuestion(t, env.db, activePoll, "Why?", models.QuestionText)
	oneQ := testutil.AddTestQuestion(t, env.db, activePoll, "Pick one", models.QuestionOneOption)
	oneA := testutil.AddTestAnswer(t, env.db, oneQ, "Yes")
	oneB := testutil.AddTestAnswer(t, env.db, oneQ, "No")
	severalQ := testutil.AddTestQuestion(t, env.db, activePoll, "Pick some", models.QuestionSeveralOptions)
	severalA := testutil.AddTestAnswer(t, env.db, severalQ, "Red")
	severalB := testutil.AddTestAnswer(t, env.db, severalQ, "Blue")

	start, finish = testutil.PastWindow()
	closedPoll := testutil.CreateTestPoll(t, env.db, "Closed", start, finish)
	closedTextQ := testutil.AddTestQuestion(t, env.db, closedPoll, "Too late?", models.QuestionText)
	closedChoiceQ := testutil.AddTestQuestion(t, env.db, closedPoll, "Too late to pick?", models.QuestionOneOption)
	closedOpt := testutil.AddTestAnswer(t, env.db, closedChoiceQ, "Yes")

	start, finish = testutil.FutureWindow()
	futurePoll := testutil.CreateTestPoll(t, env.db, "Future", start, finish)
	futureQ := testutil.AddTestQuestion(t, env.db, futurePoll, "Too early?", models.QuestionText)

	tests := []struct {
		name            string
		body            models.SubmitAnswerRequest
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:           "text answer",
			body:           models.SubmitAnswerRequest{Question: textQ, TypedAnswer: strPtr("because")},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "one option answer",
			body:           models.SubmitAnswerRequest{Question: oneQ, SelectedAnswers: []string{oneA}},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "several options answer",
			body:           models.SubmitAnswerRequest{Question: severalQ, SelectedAnswers: []string{severalA, severalB}},
			expectedStatus: http.StatusCreated,
		},
		{
			name:            "finished poll with text",
			body:            models.SubmitAnswerRequest{Question: closedTextQ, TypedAnswer: strPtr("late")},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: validation.MsgInactivePoll,
		},
		{
			name:            "finished poll with choice",
			body:            models.SubmitAnswerRequest{Question: closedChoiceQ, SelectedAnswers: []string{closedOpt}},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: validation.MsgInactivePoll,
		},
		{
			name:            "finished poll with invalid payload",
			body:            models.SubmitAnswerRequest{Question: closedTextQ, TypedAnswer: strPtr("x"), SelectedAnswers: []string{closedOpt}},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: validation.MsgInactivePoll,
		},
		{
			name:            "poll not started",
			body:            models.SubmitAnswerRequest{Question: futureQ, TypedAnswer: strPtr("early")},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: validation.MsgInactivePoll,
		},
		{
			name:            "text question with both set",
			body:            models.SubmitAnswerRequest{Question: textQ, TypedAnswer: strPtr("x"), SelectedAnswers: []string{oneA}},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: validation.MsgTextAnswer,
		},
		{
			name:            "choice question with both set",
			body:            models.SubmitAnswerRequest{Question: oneQ, TypedAnswer: strPtr("x"), SelectedAnswers: []string{oneA}},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: validation.MsgChoiceAnswer,
		},
		{
			name:            "text question with neither",
			body:            models.SubmitAnswerRequest{Question: textQ},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: validation.MsgTextAnswer,
		},
		{
			name:            "several options with empty selection",
			body:            models.SubmitAnswerRequest{Question: severalQ, SelectedAnswers: []string{}},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Choice answer from list for this question",
		},
		{
			name:            "text question with selection only",
			body:            models.SubmitAnswerRequest{Question: textQ, SelectedAnswers: []string{oneA}},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: validation.MsgTextAnswer,
		},
		{
			name:            "choice question with text only",
			body:            models.SubmitAnswerRequest{Question: severalQ, TypedAnswer: strPtr("Red")},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: validation.MsgChoiceAnswer,
		},
		{
			name:            "one option with two selections",
			body:            models.SubmitAnswerRequest{Question: oneQ, SelectedAnswers: []string{oneA, oneB}},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: validation.MsgOneOption,
		},
		{
			name:            "answer from another question",
			body:            models.SubmitAnswerRequest{Question: severalQ, SelectedAnswers: []string{severalA, oneA}},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: validation.MsgForeignAnswer,
		},
		{
			name:           "unknown question",
			body:           models.SubmitAnswerRequest{Question: "missing", TypedAnswer: strPtr("x")},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing question",
			body:           models.SubmitAnswerRequest{TypedAnswer: strPtr("x")},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.CountRows(t, env.db, "user_answer")

			req := asAccount(testutil.MakeRequest("POST", "/polling/", tt.body, nil), user)
			w := httptest.NewRecorder()
			handler.Submit(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			after := testutil.CountRows(t, env.db, "user_answer")

			if tt.expectedStatus == http.StatusCreated {
				if after != before+1 {
					t.Errorf("Expected one new submission, rows went %d -> %d", before, after)
				}
				var ua models.UserAnswer
				testutil.AssertJSON(t, w, &ua)
				if ua.Question != tt.body.Question {
					t.Errorf("Expected question %s, got %s", tt.body.Question, ua.Question)
				}
				if (ua.TypedAnswer != nil) == (len(ua.SelectedAnswers) > 0) {
					t.Errorf("Stored submission is not exactly one of typed/selected: %+v", ua)
				}
				return
			}

			if after != before {
				t.Errorf("Rejected submission was stored, rows went %d -> %d", before, after)
			}
			if tt.expectedMessage != "" {
				var resp models.ErrorResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Message != tt.expectedMessage {
					t.Errorf("Expected message %q, got %q", tt.expectedMessage, resp.Message)
				}
			}
		})
	}
}

func TestSubmitAnswer_SubmitterFromIdentity(t *testing.T) {
	env := newTestEnv(t)
	handler := NewPollingHandler(env.store)
	alice := testutil.CreateTestAccount(t, env.db, "alice", models.RoleUser)
	bob := testutil.CreateTestAccount(t, env.db, "bob", models.RoleUser)

	start, finish := testutil.ActiveWindow()
	pollID := testutil.CreateTestPoll(t, env.db, "Poll", start, finish)
	questionID := testutil.AddTestQuestion(t, env.db, pollID, "Why?", models.QuestionText)

	// A client-supplied user field is ignored
	body := map[string]interface{}{
		"question":     questionID,
		"typed_answer": "mine",
		"user":         bob.ID,
		"account_id":   bob.ID,
	}
	req := asAccount(testutil.MakeRequest("POST", "/polling/", body, nil), alice)
	w := httptest.NewRecorder()
	handler.Submit(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var owner string
	if err := env.db.QueryRow("SELECT account_id FROM user_answer").Scan(&owner); err != nil {
		t.Fatalf("Failed to read submission: %v", err)
	}
	if owner != alice.ID {
		t.Errorf("Expected submission by %s, got %s", alice.ID, owner)
	}
}

func TestSubmitAnswer_RequiresIdentity(t *testing.T) {
	env := newTestEnv(t)
	handler := NewPollingHandler(env.store)

	req := testutil.MakeRequest("POST", "/polling/", models.SubmitAnswerRequest{Question: "q"}, nil)
	w := httptest.NewRecorder()
	handler.Submit(w, req)

	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestSubmitAnswer_DuplicateSelectionsCollapse(t *testing.T) {
	env := newTestEnv(t)
	handler := NewPollingHandler(env.store)
	user := testutil.CreateTestAccount(t, env.db, "alice", models.RoleUser)

	start, finish := testutil.ActiveWindow()
	pollID := testutil.CreateTestPoll(t, env.db, "Poll", start, finish)
	questionID := testutil.AddTestQuestion(t, env.db, pollID, "Pick one", models.QuestionOneOption)
	answerID := testutil.AddTestAnswer(t, env.db, questionID, "Yes")

	body := models.SubmitAnswerRequest{Question: questionID, SelectedAnswers: []string{answerID, answerID}}
	req := asAccount(testutil.MakeRequest("POST", "/polling/", body, nil), user)
	w := httptest.NewRecorder()
	handler.Submit(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)
	if n := testutil.CountRows(t, env.db, "user_answer_selection"); n != 1 {
		t.Errorf("Expected 1 selection row, got %d", n)
	}
}
