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

// resultsFixture has two users answering one poll and leaving another alone
type resultsFixture struct {
	env        testEnv
	alice      models.Account
	bob        models.Account
	admin      models.Account
	answered   string
	untouched  string
	questionID string
}

func newResultsFixture(t *testing.T) resultsFixture {
	env := newTestEnv(t)
	f := resultsFixture{
		env:   env,
		alice: testutil.CreateTestAccount(t, env.db, "alice", models.RoleUser),
		bob:   testutil.CreateTestAccount(t, env.db, "bob", models.RoleUser),
		admin: testutil.CreateTestAccount(t, env.db, "root", models.RoleAdmin),
	}

	start, finish := testutil.ActiveWindow()
	f.answered = testutil.CreateTestPoll(t, env.db, "Answered", start, finish)
	f.untouched = testutil.CreateTestPoll(t, env.db, "Untouched", start, finish)

	f.questionID = testutil.AddTestQuestion(t, env.db, f.answered, "Pick", models.QuestionSeveralOptions)
	yes := testutil.AddTestAnswer(t, env.db, f.questionID, "Yes")
	no := testutil.AddTestAnswer(t, env.db, f.questionID, "No")
	testutil.AddTestQuestion(t, env.db, f.untouched, "Ignored", models.QuestionText)

	testutil.SubmitTestAnswer(t, env.db, f.alice.ID, f.questionID, nil, yes)
	testutil.SubmitTestAnswer(t, env.db, f.bob.ID, f.questionID, nil, yes, no)

	return f
}

func (f resultsFixture) fetch(t *testing.T, cfgOwnOnly bool, account models.Account) []models.PassedPoll {
	t.Helper()
	cfg := f.env.cfg
	cfg.ResultsOwnOnly = cfgOwnOnly
	handler := NewResultsHandler(f.env.store, cfg)

	req := asAccount(testutil.MakeRequest("GET", "/results/", nil, nil), account)
	w := httptest.NewRecorder()
	handler.List(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var polls []models.PassedPoll
	testutil.AssertJSON(t, w, &polls)
	return polls
}

func TestResults_OnlyAnsweredPolls(t *testing.T) {
	f := newResultsFixture(t)

	polls := f.fetch(t, false, f.alice)
	if len(polls) != 1 || polls[0].ID != f.answered {
		t.Fatalf("Expected only poll %s, got %+v", f.answered, polls)
	}

	questions := polls[0].Questions
	if len(questions) != 1 || questions[0].ID != f.questionID {
		t.Fatalf("Expected the poll's question, got %+v", questions)
	}
	if len(questions[0].Answers) != 2 {
		t.Errorf("Expected 2 nested answers, got %d", len(questions[0].Answers))
	}
	// All users' submissions are listed by default
	if len(questions[0].UsersAnswers) != 2 {
		t.Errorf("Expected 2 submissions, got %d", len(questions[0].UsersAnswers))
	}

	// Admin has not answered anything
	if polls := f.fetch(t, false, f.admin); len(polls) != 0 {
		t.Errorf("Expected no results for admin, got %d polls", len(polls))
	}
}

func TestResults_OwnOnly(t *testing.T) {
	f := newResultsFixture(t)

	polls := f.fetch(t, true, f.alice)
	if len(polls) != 1 {
		t.Fatalf("Expected 1 poll, got %d", len(polls))
	}
	submissions := polls[0].Questions[0].UsersAnswers
	if len(submissions) != 1 {
		t.Fatalf("Expected only alice's submission, got %d", len(submissions))
	}
	if len(submissions[0].SelectedAnswers) != 1 {
		t.Errorf("Expected alice's single selection, got %v", submissions[0].SelectedAnswers)
	}
}

func TestResults_OwnOnlyAdminSeesAll(t *testing.T) {
	f := newResultsFixture(t)

	// Give the admin an answer so the poll shows up
	testutil.SubmitTestAnswer(t, f.env.db, f.admin.ID, f.questionID, nil, testutil.AddTestAnswer(t, f.env.db, f.questionID, "Maybe"))

	polls := f.fetch(t, true, f.admin)
	if len(polls) != 1 {
		t.Fatalf("Expected 1 poll, got %d", len(polls))
	}
	if n := len(polls[0].Questions[0].UsersAnswers); n != 3 {
		t.Errorf("Expected admin to see all 3 submissions, got %d", n)
	}
}

func TestResults_RequiresIdentity(t *testing.T) {
	env := newTestEnv(t)
	handler := NewResultsHandler(env.store, env.cfg)

	w := httptest.NewRecorder()
	handler.List(w, testutil.MakeRequest("GET", "/results/", nil, nil))

	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}
