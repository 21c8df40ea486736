package handler

import (
	"database/sql"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"folio-go/internal/middleware"
)

// testRouter wires the handlers the same way the server does, minus the
// outer middleware that does not affect routing semantics.
func testRouter(t *testing.T, db *sql.DB, sm *scs.SessionManager) http.Handler {
	t.Helper()

	renderer := testRenderer(t, sm)

	pagesHandler := NewPagesHandler(renderer)
	authHandler := NewAuthHandler(db, renderer, sm)
	projectsHandler := NewProjectsHandler(db, renderer)
	contactsHandler := NewContactsHandler(db, renderer)

	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)

	r.Get(RouteRoot, pagesHandler.Home)
	r.Get(RouteAbout, pagesHandler.About)
	r.Get(RouteSkills, pagesHandler.Skills)
	r.Get(RouteProjects, projectsHandler.List)

	r.Get(RouteContact, contactsHandler.Form)
	r.Post(RouteContact, contactsHandler.Create)

	r.Get(RouteLogin, authHandler.LoginForm)
	r.Post(RouteLogin, authHandler.Login)
	r.Get(RouteRegister, authHandler.RegisterForm)
	r.Post(RouteRegister, authHandler.Register)
	r.Get(RouteLogout, authHandler.Logout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(sm))
		r.Use(middleware.LoadUser(sm, db))

		r.Get(RouteDashboard, projectsHandler.Dashboard)
		r.Get(RouteMessages, contactsHandler.Messages)
		r.Post(RouteAddProject, projectsHandler.Create)
		r.Get(RouteDeleteProjectID, projectsHandler.DeleteByID)
		r.Get(RouteDeleteProjectName, projectsHandler.DeleteByName)
		r.Get(RouteDeleteMessage, contactsHandler.Delete)
	})

	return r
}

func testClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("creating cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func get(t *testing.T, client *http.Client, url string) (int, string) {
	t.Helper()
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func postForm(t *testing.T, client *http.Client, url string, values url.Values) (int, string) {
	t.Helper()
	resp, err := client.PostForm(url, values)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestRoutes_PublicPages(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	srv := httptest.NewServer(testRouter(t, db, sm))
	defer srv.Close()

	client := testClient(t)
	for _, path := range []string{RouteRoot, RouteAbout, RouteSkills, RouteProjects, RouteContact, RouteLogin, RouteRegister} {
		if code, _ := get(t, client, srv.URL+path); code != http.StatusOK {
			t.Errorf("GET %s: status = %d; want %d", path, code, http.StatusOK)
		}
	}
}

func TestRoutes_DashboardRequiresLogin(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	srv := httptest.NewServer(testRouter(t, db, sm))
	defer srv.Close()

	// The client follows the redirect, so an unauthenticated dashboard
	// request lands on the login page with the flash rendered.
	code, body := get(t, testClient(t), srv.URL+RouteDashboard)
	if code != http.StatusOK {
		t.Fatalf("status = %d; want %d after redirect", code, http.StatusOK)
	}
	if !strings.Contains(body, "Please log in first") {
		t.Errorf("expected login notice in body")
	}
	if !strings.Contains(body, "Login") {
		t.Errorf("expected login page after redirect")
	}
}

func TestRoutes_FullAdminFlow(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	srv := httptest.NewServer(testRouter(t, db, sm))
	defer srv.Close()

	client := testClient(t)

	// Register, then log in.
	code, body := postForm(t, client, srv.URL+RouteRegister, url.Values{
		"uname":    {"admin"},
		"email":    {"admin@example.com"},
		"password": {"s3cret"},
	})
	if code != http.StatusOK || !strings.Contains(body, "Registration successful! Please login.") {
		t.Fatalf("register: status = %d, body = %q", code, body)
	}

	code, body = postForm(t, client, srv.URL+RouteLogin, url.Values{
		"uname":    {"admin"},
		"password": {"s3cret"},
	})
	if code != http.StatusOK || !strings.Contains(body, "Successfully logged in!") {
		t.Fatalf("login: status = %d, body = %q", code, body)
	}

	// Dashboard starts with no projects.
	code, body = get(t, client, srv.URL+RouteDashboard)
	if code != http.StatusOK {
		t.Fatalf("dashboard: status = %d", code)
	}
	if strings.Contains(body, "delete_project") {
		t.Errorf("dashboard should have no projects yet: %q", body)
	}

	// Add a project, confirm it shows up.
	code, body = postForm(t, client, srv.URL+RouteAddProject, url.Values{
		"pname":       {"site"},
		"projectlink": {"https://example.com/site"},
		"description": {"My site"},
	})
	if code != http.StatusOK || !strings.Contains(body, "Project added successfully!") {
		t.Fatalf("add project: status = %d, body = %q", code, body)
	}
	if !strings.Contains(body, "site") {
		t.Errorf("dashboard should list the new project")
	}

	// Delete it by name, confirm the dashboard is empty again.
	code, body = get(t, client, srv.URL+"/delete_project/site")
	if code != http.StatusOK || !strings.Contains(body, "Project deleted successfully!") {
		t.Fatalf("delete project: status = %d, body = %q", code, body)
	}
	if strings.Contains(body, "delete_project/id/") {
		t.Errorf("dashboard should be empty after delete: %q", body)
	}

	// Log out, the dashboard locks again.
	code, body = get(t, client, srv.URL+RouteLogout)
	if code != http.StatusOK || !strings.Contains(body, "Successfully logged out!") {
		t.Fatalf("logout: status = %d, body = %q", code, body)
	}

	code, body = get(t, client, srv.URL+RouteDashboard)
	if code != http.StatusOK || !strings.Contains(body, "Please log in first") {
		t.Fatalf("dashboard after logout: status = %d, body = %q", code, body)
	}
}

func TestRoutes_ContactSubmission(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	srv := httptest.NewServer(testRouter(t, db, sm))
	defer srv.Close()

	client := testClient(t)

	code, body := postForm(t, client, srv.URL+RouteContact, url.Values{
		"name":    {"Visitor"},
		"email":   {"visitor@example.com"},
		"message": {"Nice site!"},
	})
	if code != http.StatusOK || !strings.Contains(body, "Message sent successfully!") {
		t.Fatalf("contact: status = %d, body = %q", code, body)
	}

	// The message shows up in the inbox once logged in.
	createTestUser(t, db, "admin", "admin@example.com", "s3cret")
	if code, _ := postForm(t, client, srv.URL+RouteLogin, url.Values{
		"uname":    {"admin"},
		"password": {"s3cret"},
	}); code != http.StatusOK {
		t.Fatalf("login: status = %d", code)
	}

	code, body = get(t, client, srv.URL+RouteMessages)
	if code != http.StatusOK || !strings.Contains(body, "Nice site!") {
		t.Fatalf("messages: status = %d, body = %q", code, body)
	}
}

func TestRoutes_DeleteProjectByIDRoute(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	srv := httptest.NewServer(testRouter(t, db, sm))
	defer srv.Close()

	client := testClient(t)

	createTestUser(t, db, "admin", "admin@example.com", "s3cret")
	if code, _ := postForm(t, client, srv.URL+RouteLogin, url.Values{
		"uname":    {"admin"},
		"password": {"s3cret"},
	}); code != http.StatusOK {
		t.Fatalf("login failed")
	}

	if code, _ := postForm(t, client, srv.URL+RouteAddProject, url.Values{"pname": {"site"}}); code != http.StatusOK {
		t.Fatalf("add project failed")
	}

	code, body := get(t, client, srv.URL+"/delete_project/id/1")
	if code != http.StatusOK || !strings.Contains(body, "Project deleted successfully!") {
		t.Fatalf("delete by id: status = %d, body = %q", code, body)
	}
}
