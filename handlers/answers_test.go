// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/testutil"
)

func TestListAnswers(t *testing.T) {
	env := newTestEnv(t)
	handler := NewAnswerHandler(env.store)

	start, finish := testutil.ActiveWindow()
	pollID := testutil.CreateTestPoll(t, env.db, "Poll", start, finish)
	q1 := testutil.AddTestQuestion(t, env.db, pollID, "Q1", models.QuestionOneOption)
	q2 := testutil.AddTestQuestion(t, env.db, pollID, "Q2", models.QuestionOneOption)
	a1 := testutil.AddTestAnswer(t, env.db, q1, "Apple")
	a2 := testutil.AddTestAnswer(t, env.db, q1, "Banana")
	a3 := testutil.AddTestAnswer(t, env.db, q2, "Cherry")

	tests := []struct {
		name     string
		path     string
		expected []string
	}{
		{"all", "/answer/", []string{a1, a2, a3}},
		{"by question", "/answer/?question=" + q1, []string{a1, a2}},
		{"by id", "/answer/?id=" + a3, []string{a3}},
		{"unknown question", "/answer/?question=missing", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", tt.path, nil, nil)
			w := httptest.NewRecorder()
			handler.List(w, req)

			testutil.AssertStatus(t, w, http.StatusOK)
			var answers []models.Answer
			testutil.AssertJSON(t, w, &answers)

			if len(answers) != len(tt.expected) {
				t.Fatalf("Expected %d answers, got %d", len(tt.expected), len(answers))
			}
			for i, id := range tt.expected {
				if answers[i].ID != id {
					t.Errorf("Position %d: expected %s, got %s", i, id, answers[i].ID)
				}
			}
		})
	}
}

func TestCreateAnswer(t *testing.T) {
	env := newTestEnv(t)
	handler := NewAnswerHandler(env.store)

	start, finish := testutil.ActiveWindow()
	pollID := testutil.CreateTestPoll(t, env.db, "Poll", start, finish)
	questionID := testutil.AddTestQuestion(t, env.db, pollID, "Q", models.QuestionOneOption)

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{"valid", models.CreateAnswerRequest{Question: questionID, Text: "Yes"}, http.StatusCreated},
		{"unknown question", models.CreateAnswerRequest{Question: "missing", Text: "Yes"}, http.StatusBadRequest},
		{"missing text", models.CreateAnswerRequest{Question: questionID}, http.StatusBadRequest},
		{"missing question", models.CreateAnswerRequest{Text: "Yes"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/answer/", tt.body, nil)
			w := httptest.NewRecorder()
			handler.Create(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated {
				var answer models.Answer
				testutil.AssertJSON(t, w, &answer)
				if answer.ID == "" || answer.Question != questionID || answer.Text != "Yes" {
					t.Errorf("Unexpected answer: %+v", answer)
				}
			}
		})
	}

	if n := testutil.CountRows(t, env.db, "answer"); n != 1 {
		t.Errorf("Expected exactly 1 stored answer, got %d", n)
	}
}
