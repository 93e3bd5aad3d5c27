// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-survey/auth"
	"github.com/danielhkuo/quickly-survey/cliparse"
	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/models"
)

// TestPassword is the password of every account created by CreateTestAccount
const TestPassword = "password123"

// SetupTestDB creates a fresh SQLite database with the full schema.
// The file lives in the test's temp dir and is removed with it.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  "test.db",
		DatabaseType: db.TypeSQLite,
		JWTSecret:    "test-jwt-secret",
		TokenTTL:     time.Hour,
	}
}

// CreateTestAccount inserts an account with TestPassword
func CreateTestAccount(t *testing.T, conn *sql.DB, username, role string) models.Account {
	t.Helper()

	id, _ := auth.GenerateID(12)
	hash, err := auth.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	now := time.Now().UTC().Truncate(time.Microsecond)

	_, err = conn.Exec(`
		INSERT INTO account (id, username, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, username, hash, role, now)
	if err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}

	return models.Account{ID: id, Username: username, Role: role, PasswordHash: hash, CreatedAt: now}
}

// IssueTestToken returns a bearer token for the account signed with cfg's secret
func IssueTestToken(t *testing.T, cfg cliparse.Config, account models.Account) string {
	t.Helper()

	token, _, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL).Issue(account.ID, account.Role)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return token
}

// BearerHeader builds the Authorization header map for MakeRequest
func BearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// CreateTestPoll creates a poll with the given window and returns its ID.
// Use ActiveWindow or FutureWindow for the common cases.
func CreateTestPoll(t *testing.T, conn *sql.DB, title string, start, finish time.Time) string {
	t.Helper()

	pollID, _ := auth.GenerateID(12)
	_, err := conn.Exec(`
		INSERT INTO poll (id, title, description, start_date, finish_date, created_at)
		VALUES (?, ?, 'A test poll', ?, ?, ?)
	`, pollID, title,
		start.UTC().Truncate(time.Microsecond),
		finish.UTC().Truncate(time.Microsecond),
		time.Now().UTC().Truncate(time.Microsecond))
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return pollID
}

// ActiveWindow returns a window that contains the current time
func ActiveWindow() (start, finish time.Time) {
	now := time.Now()
	return now.Add(-time.Hour), now.Add(time.Hour)
}

// FutureWindow returns a window that starts after the current time
func FutureWindow() (start, finish time.Time) {
	now := time.Now()
	return now.Add(time.Hour), now.Add(2 * time.Hour)
}

// PastWindow returns a window that has already finished
func PastWindow() (start, finish time.Time) {
	now := time.Now()
	return now.Add(-2 * time.Hour), now.Add(-time.Hour)
}

// AddTestQuestion adds a question to a poll and returns the question ID
func AddTestQuestion(t *testing.T, conn *sql.DB, pollID, text string, qtype models.QuestionType) string {
	t.Helper()

	questionID, _ := auth.GenerateID(12)
	_, err := conn.Exec(`
		INSERT INTO question (id, poll_id, text, qtype)
		VALUES (?, ?, ?, ?)
	`, questionID, pollID, text, int(qtype))
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}

	return questionID
}

// AddTestAnswer adds a candidate answer to a question and returns its ID
func AddTestAnswer(t *testing.T, conn *sql.DB, questionID, text string) string {
	t.Helper()

	answerID, _ := auth.GenerateID(12)
	_, err := conn.Exec(`
		INSERT INTO answer (id, question_id, text)
		VALUES (?, ?, ?)
	`, answerID, questionID, text)
	if err != nil {
		t.Fatalf("Failed to create test answer: %v", err)
	}

	return answerID
}

// SubmitTestAnswer records a submission directly, bypassing validation.
// typed is stored when non-nil; otherwise selected are linked.
func SubmitTestAnswer(t *testing.T, conn *sql.DB, accountID, questionID string, typed *string, selected ...string) string {
	t.Helper()

	id, _ := auth.GenerateID(12)
	_, err := conn.Exec(`
		INSERT INTO user_answer (id, account_id, question_id, typed_answer, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, accountID, questionID, typed, time.Now().UTC().Truncate(time.Microsecond))
	if err != nil {
		t.Fatalf("Failed to create test user answer: %v", err)
	}

	for _, answerID := range selected {
		_, err := conn.Exec(`
			INSERT INTO user_answer_selection (user_answer_id, answer_id)
			VALUES (?, ?)
		`, id, answerID)
		if err != nil {
			t.Fatalf("Failed to create test selection: %v", err)
		}
	}

	return id
}

// CountRows returns the number of rows in table
func CountRows(t *testing.T, conn *sql.DB, table string) int {
	t.Helper()

	var n int
	if err := conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
