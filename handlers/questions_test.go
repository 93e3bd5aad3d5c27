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

func TestListActiveQuestions(t *testing.T) {
	env := newTestEnv(t)
	handler := NewQuestionHandler(env.store)

	start, finish := testutil.ActiveWindow()
	activePoll := testutil.CreateTestPoll(t, env.db, "Active", start, finish)
	otherActive := testutil.CreateTestPoll(t, env.db, "Other", start, finish)
	start, finish = testutil.PastWindow()
	pastPoll := testutil.CreateTestPoll(t, env.db, "Past", start, finish)

	q1 := testutil.AddTestQuestion(t, env.db, activePoll, "Alpha", models.QuestionText)
	q2 := testutil.AddTestQuestion(t, env.db, otherActive, "Beta", models.QuestionOneOption)
	testutil.AddTestQuestion(t, env.db, pastPoll, "Gamma", models.QuestionText)

	tests := []struct {
		name     string
		path     string
		expected []string
	}{
		{"active polls only", "/question/", []string{q1, q2}},
		{"poll filter", "/question/?poll=" + otherActive, []string{q2}},
		{"inactive poll filter", "/question/?poll=" + pastPoll, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", tt.path, nil, nil)
			w := httptest.NewRecorder()
			handler.ListActive(w, req)

			testutil.AssertStatus(t, w, http.StatusOK)
			var questions []models.Question
			testutil.AssertJSON(t, w, &questions)

			if len(questions) != len(tt.expected) {
				t.Fatalf("Expected %d questions, got %d", len(tt.expected), len(questions))
			}
			for i, id := range tt.expected {
				if questions[i].ID != id {
					t.Errorf("Position %d: expected %s, got %s", i, id, questions[i].ID)
				}
			}
		})
	}
}

func TestQuestionDetailVisibility(t *testing.T) {
	env := newTestEnv(t)
	handler := NewQuestionHandler(env.store)

	start, finish := testutil.ActiveWindow()
	activePoll := testutil.CreateTestPoll(t, env.db, "Active", start, finish)
	otherPoll := testutil.CreateTestPoll(t, env.db, "Other", start, finish)
	start, finish = testutil.FutureWindow()
	futurePoll := testutil.CreateTestPoll(t, env.db, "Future", start, finish)
	start, finish = testutil.PastWindow()
	pastPoll := testutil.CreateTestPoll(t, env.db, "Past", start, finish)

	visible := testutil.AddTestQuestion(t, env.db, activePoll, "Visible", models.QuestionOneOption)
	testutil.AddTestAnswer(t, env.db, visible, "Yes")
	testutil.AddTestAnswer(t, env.db, visible, "No")
	notYet := testutil.AddTestQuestion(t, env.db, futurePoll, "Not yet", models.QuestionText)
	closed := testutil.AddTestQuestion(t, env.db, pastPoll, "Closed", models.QuestionText)

	tests := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{"active question", "/question/?id=" + visible, http.StatusOK},
		{"active question with matching poll", "/question/?id=" + visible + "&poll=" + activePoll, http.StatusOK},
		{"poll mismatch", "/question/?id=" + visible + "&poll=" + otherPoll, http.StatusNotFound},
		{"unknown poll param", "/question/?id=" + visible + "&poll=missing", http.StatusNotFound},
		{"poll not started", "/question/?id=" + notYet, http.StatusNotFound},
		{"poll finished", "/question/?id=" + closed, http.StatusNotFound},
		{"poll finished with matching poll", "/question/?id=" + closed + "&poll=" + pastPoll, http.StatusNotFound},
		{"unknown question", "/question/?id=missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", tt.path, nil, nil)
			w := httptest.NewRecorder()
			handler.ListActive(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusOK {
				var detail models.QuestionDetail
				testutil.AssertJSON(t, w, &detail)
				if detail.ID != visible {
					t.Errorf("Expected question %s, got %s", visible, detail.ID)
				}
				if len(detail.Answers) != 2 {
					t.Errorf("Expected 2 nested answers, got %d", len(detail.Answers))
				}
			}
		})
	}
}

func TestCreateQuestion(t *testing.T) {
	env := newTestEnv(t)
	handler := NewQuestionHandler(env.store)

	// Admins may add questions to polls outside their window
	start, finish := testutil.FutureWindow()
	pollID := testutil.CreateTestPoll(t, env.db, "Future", start, finish)

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectedField  string
	}{
		{
			name:           "valid text question",
			body:           models.CreateQuestionRequest{Poll: pollID, Text: "Why?", QType: models.QuestionText},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "valid several options question",
			body:           models.CreateQuestionRequest{Poll: pollID, Text: "Which?", QType: models.QuestionSeveralOptions},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "unknown poll",
			body:           models.CreateQuestionRequest{Poll: "missing", Text: "Why?", QType: models.QuestionText},
			expectedStatus: http.StatusBadRequest,
			expectedField:  "poll",
		},
		{
			name:           "unknown qtype",
			body:           map[string]interface{}{"poll": pollID, "text": "Why?", "qtype": 4},
			expectedStatus: http.StatusBadRequest,
			expectedField:  "qtype",
		},
		{
			name:           "missing qtype",
			body:           map[string]interface{}{"poll": pollID, "text": "Why?"},
			expectedStatus: http.StatusBadRequest,
			expectedField:  "qtype",
		},
		{
			name:           "missing text",
			body:           models.CreateQuestionRequest{Poll: pollID, QType: models.QuestionText},
			expectedStatus: http.StatusBadRequest,
			expectedField:  "text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/admin/question/", tt.body, nil)
			w := httptest.NewRecorder()
			handler.Create(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedField != "" {
				var resp models.ErrorResponse
				testutil.AssertJSON(t, w, &resp)
				if _, ok := resp.Fields[tt.expectedField]; !ok {
					t.Errorf("Expected error for field %s, got %v", tt.expectedField, resp.Fields)
				}
			}
		})
	}
}

func TestAdminQuestionLifecycle(t *testing.T) {
	env := newTestEnv(t)
	handler := NewQuestionHandler(env.store)

	start, finish := testutil.PastWindow()
	pollID := testutil.CreateTestPoll(t, env.db, "Past", start, finish)
	questionID := testutil.AddTestQuestion(t, env.db, pollID, "Original", models.QuestionText)
	testutil.AddTestAnswer(t, env.db, questionID, "Option")

	t.Run("get ignores window", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/admin/question/"+questionID, nil, nil)
		req.SetPathValue("id", questionID)
		w := httptest.NewRecorder()
		handler.Get(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var detail models.QuestionDetail
		testutil.AssertJSON(t, w, &detail)
		if len(detail.Answers) != 1 {
			t.Errorf("Expected 1 nested answer, got %d", len(detail.Answers))
		}
	})

	t.Run("list with filters", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/admin/question/?poll="+pollID, nil, nil)
		w := httptest.NewRecorder()
		handler.List(w, req)

		var questions []models.Question
		testutil.AssertJSON(t, w, &questions)
		if len(questions) != 1 || questions[0].ID != questionID {
			t.Errorf("Expected [%s], got %+v", questionID, questions)
		}
	})

	t.Run("put", func(t *testing.T) {
		body := models.UpdateQuestionRequest{Text: "Updated", QType: models.QuestionOneOption}
		req := testutil.MakeRequest("PUT", "/admin/question/"+questionID, body, nil)
		req.SetPathValue("id", questionID)
		w := httptest.NewRecorder()
		handler.Update(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var q models.Question
		testutil.AssertJSON(t, w, &q)
		if q.Text != "Updated" || q.QType != models.QuestionOneOption || q.Poll != pollID {
			t.Errorf("Unexpected question: %+v", q)
		}
	})

	t.Run("patch qtype", func(t *testing.T) {
		req := testutil.MakeRequest("PATCH", "/admin/question/"+questionID, map[string]int{"qtype": 3}, nil)
		req.SetPathValue("id", questionID)
		w := httptest.NewRecorder()
		handler.Patch(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var q models.Question
		testutil.AssertJSON(t, w, &q)
		if q.Text != "Updated" || q.QType != models.QuestionSeveralOptions {
			t.Errorf("Unexpected question: %+v", q)
		}
	})

	t.Run("patch invalid qtype", func(t *testing.T) {
		req := testutil.MakeRequest("PATCH", "/admin/question/"+questionID, map[string]int{"qtype": 9}, nil)
		req.SetPathValue("id", questionID)
		w := httptest.NewRecorder()
		handler.Patch(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("delete", func(t *testing.T) {
		req := testutil.MakeRequest("DELETE", "/admin/question/"+questionID, nil, nil)
		req.SetPathValue("id", questionID)
		w := httptest.NewRecorder()
		handler.Delete(w, req)
		testutil.AssertStatus(t, w, http.StatusNoContent)

		w = httptest.NewRecorder()
		handler.Get(w, req)
		testutil.AssertStatus(t, w, http.StatusNotFound)

		if n := testutil.CountRows(t, env.db, "answer"); n != 0 {
			t.Errorf("Expected answers to be deleted with the question, got %d", n)
		}
	})

	t.Run("update missing", func(t *testing.T) {
		body := models.UpdateQuestionRequest{Text: "x", QType: models.QuestionText}
		req := testutil.MakeRequest("PUT", "/admin/question/missing", body, nil)
		req.SetPathValue("id", "missing")
		w := httptest.NewRecorder()
		handler.Update(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}
