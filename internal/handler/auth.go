package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"folio-go/internal/auth"
	"folio-go/internal/middleware"
	"folio-go/internal/render"
	"folio-go/internal/store"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager) *AuthHandler {
	return &AuthHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
	}
}

// LoginForm renders the login page. Already-authenticated users are
// sent straight to the dashboard.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.sessionManager.GetInt64(r.Context(), middleware.SessionKeyUserID) > 0 {
		http.Redirect(w, r, RouteDashboard, http.StatusSeeOther)
		return
	}

	if err := h.renderer.Render(w, r, "login", render.TemplateData{Title: "Login"}); err != nil {
		logAndInternalError(w, "rendering login page", "error", err)
	}
}

// Login handles the login form submission. Missing users and wrong
// passwords produce the same notice so the form does not reveal which
// field was wrong.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteLogin) {
		return
	}

	username := r.FormValue("uname")
	password := r.FormValue("password")

	if username == "" || password == "" {
		flashError(w, r, h.renderer, RouteLogin, "Username and password are required")
		return
	}

	user, err := h.queries.GetUserByUsername(r.Context(), username)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("database error during login", "error", err)
		}
		flashError(w, r, h.renderer, RouteLogin, "Invalid username or password")
		return
	}

	valid, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		slog.Error("password check error", "error", err, "user_id", user.ID)
		flashError(w, r, h.renderer, RouteLogin, "Invalid username or password")
		return
	}
	if !valid {
		slog.Debug("invalid password attempt", "username", username)
		flashError(w, r, h.renderer, RouteLogin, "Invalid username or password")
		return
	}

	// Regenerate session ID to prevent session fixation
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}

	h.sessionManager.Put(r.Context(), middleware.SessionKeyUserID, user.ID)
	h.sessionManager.Put(r.Context(), middleware.SessionKeyUsername, user.Username)

	slog.Info("user logged in", "user_id", user.ID, "username", user.Username)
	flashSuccess(w, r, h.renderer, RouteDashboard, "Successfully logged in!")
}

// RegisterForm renders the registration page.
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "register", render.TemplateData{Title: "Register"}); err != nil {
		logAndInternalError(w, "rendering register page", "error", err)
	}
}

// Register handles the registration form submission. The password is
// hashed before storage; duplicate usernames or emails are rejected by
// the unique constraints and surfaced as a specific notice.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteRegister) {
		return
	}

	username := r.FormValue("uname")
	email := r.FormValue("email")
	password := r.FormValue("password")

	if username == "" || email == "" || password == "" {
		flashError(w, r, h.renderer, RouteRegister, "Username, email and password are required")
		return
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		slog.Error("password hash error", "error", err)
		flashError(w, r, h.renderer, RouteRegister, fmt.Sprintf("Registration error: %v", err))
		return
	}

	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			flashError(w, r, h.renderer, RouteRegister, "Username or email already exists. Please choose another.")
			return
		}
		slog.Error("creating user", "error", err)
		flashError(w, r, h.renderer, RouteRegister, fmt.Sprintf("Registration error: %v", err))
		return
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	flashSuccess(w, r, h.renderer, RouteLogin, "Registration successful! Please login.")
}

// Logout clears the session and redirects to login. Calling it while
// not logged in is harmless.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := h.sessionManager.GetInt64(r.Context(), middleware.SessionKeyUserID)

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.Error("session destroy error", "error", err)
	}

	if userID > 0 {
		slog.Info("user logged out", "user_id", userID)
	}
	flashSuccess(w, r, h.renderer, RouteLogin, "Successfully logged out!")
}
