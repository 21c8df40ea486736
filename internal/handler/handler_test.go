package handler

import (
	"context"
	"database/sql"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	_ "github.com/mattn/go-sqlite3"

	"folio-go/internal/auth"
	"folio-go/internal/render"
	"folio-go/internal/store"
	"folio-go/web"
)

const testSchema = `
CREATE TABLE users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE projects (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	link TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE contacts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	message TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	// In-memory databases vanish when their connection closes, so the
	// pool must stay on a single connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("creating test schema: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testSessionManager(t *testing.T) *scs.SessionManager {
	t.Helper()
	sm := scs.New()
	sm.Lifetime = 24 * time.Hour
	return sm
}

func testRenderer(t *testing.T, sm *scs.SessionManager) *render.Renderer {
	t.Helper()

	templates, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("locating templates: %v", err)
	}

	renderer, err := render.New(render.Config{TemplatesFS: templates, SessionManager: sm})
	if err != nil {
		t.Fatalf("creating renderer: %v", err)
	}
	return renderer
}

// createTestUser inserts a user with a real argon2id hash and returns its id.
func createTestUser(t *testing.T, db *sql.DB, username, email, password string) int64 {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hashing test password: %v", err)
	}

	user, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("creating test user: %v", err)
	}
	return user.ID
}

// requestWithSession wraps a request with a loaded session context.
func requestWithSession(t *testing.T, sm *scs.SessionManager, r *http.Request) *http.Request {
	t.Helper()
	ctx, err := sm.Load(r.Context(), "")
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}
	return r.WithContext(ctx)
}

// formRequest builds a POST request carrying form values.
func formRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// withURLParam attaches a chi route parameter to the request.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		body, _ := io.ReadAll(rec.Body)
		t.Fatalf("status = %d; want %d (body: %s)", rec.Code, http.StatusSeeOther, body)
	}
	if loc := rec.Header().Get("Location"); loc != location {
		t.Errorf("Location = %q; want %q", loc, location)
	}
}

func assertFlash(t *testing.T, sm *scs.SessionManager, ctx context.Context, message, flashType string) {
	t.Helper()
	if got := sm.GetString(ctx, "flash"); got != message {
		t.Errorf("flash = %q; want %q", got, message)
	}
	if got := sm.GetString(ctx, "flash_type"); got != flashType {
		t.Errorf("flash_type = %q; want %q", got, flashType)
	}
}
