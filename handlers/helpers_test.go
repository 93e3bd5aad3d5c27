// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"testing"

	"github.com/danielhkuo/quickly-survey/access"
	"github.com/danielhkuo/quickly-survey/cliparse"
	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/store"
	"github.com/danielhkuo/quickly-survey/testutil"
)

// testEnv bundles a fresh database with the store and config handlers need
type testEnv struct {
	db    *sql.DB
	store *store.Store
	cfg   cliparse.Config
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	return testEnv{
		db:    conn,
		store: store.New(conn, db.TypeSQLite),
		cfg:   testutil.GetTestConfig(),
	}
}

// asAccount attaches the identity the authenticator would have produced
func asAccount(req *http.Request, account models.Account) *http.Request {
	id := access.NewIdentity(account, "test-token-"+account.ID)
	return req.WithContext(access.WithIdentity(req.Context(), id))
}

func strPtr(s string) *string { return &s }
