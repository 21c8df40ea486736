package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"folio-go/internal/config"
	"folio-go/internal/handler"
	"folio-go/internal/middleware"
	"folio-go/internal/render"
	"folio-go/internal/session"
	"folio-go/internal/store"
	"folio-go/web"
)

func main() {
	createAdmin := flag.Bool("create-admin", false, "Create the initial admin user and exit")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "folio - personal portfolio site\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_SESSION_SECRET   Session/CSRF key (min 32 bytes; random per start if unset)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_DB_PATH          SQLite database path (default: ./data/folio.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_SERVER_HOST      Listen host (default: 0.0.0.0)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_SERVER_PORT      Listen port (default: 10000)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_ENV              Environment: development|production (default: development)\n")
	}

	flag.Parse()

	if err := run(*createAdmin); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(createAdmin bool) error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	ctx := context.Background()

	// One-time admin setup, decoupled from serving
	if createAdmin {
		return runCreateAdmin(ctx, db)
	}

	queries := store.New(db)
	if n, err := queries.CountUsers(ctx); err == nil && n == 0 {
		slog.Warn("no users exist yet; run with -create-admin to set up dashboard access")
	}

	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}

	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	// Initialize handlers
	pagesHandler := handler.NewPagesHandler(renderer)
	authHandler := handler.NewAuthHandler(db, renderer, sessionManager)
	projectsHandler := handler.NewProjectsHandler(db, renderer)
	contactsHandler := handler.NewContactsHandler(db, renderer)

	csrfMiddleware := middleware.CSRF([]byte(cfg.SessionSecret), cfg.IsDevelopment(), cfg.ServerAddr())
	slog.Info("CSRF protection initialized", "secure", !cfg.IsDevelopment())

	// Per-IP limiter for public form submissions
	formLimiter := middleware.NewRateLimiter(10, 20)

	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(sessionManager.LoadAndSave)
	r.Use(csrfMiddleware)

	// Public routes
	r.Get(handler.RouteRoot, pagesHandler.Home)
	r.Get(handler.RouteAbout, pagesHandler.About)
	r.Get(handler.RouteSkills, pagesHandler.Skills)
	r.Get(handler.RouteProjects, projectsHandler.List)

	r.Get(handler.RouteContact, contactsHandler.Form)
	r.With(formLimiter.Middleware()).Post(handler.RouteContact, contactsHandler.Create)

	r.Get(handler.RouteLogin, authHandler.LoginForm)
	r.With(formLimiter.Middleware()).Post(handler.RouteLogin, authHandler.Login)
	r.Get(handler.RouteRegister, authHandler.RegisterForm)
	r.With(formLimiter.Middleware()).Post(handler.RouteRegister, authHandler.Register)
	r.Get(handler.RouteLogout, authHandler.Logout)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(sessionManager))
		r.Use(middleware.LoadUser(sessionManager, db))

		r.Get(handler.RouteDashboard, projectsHandler.Dashboard)
		r.Get(handler.RouteMessages, contactsHandler.Messages)
		r.Post(handler.RouteAddProject, projectsHandler.Create)
		r.Get(handler.RouteDeleteProjectID, projectsHandler.DeleteByID)
		r.Get(handler.RouteDeleteProjectName, projectsHandler.DeleteByName)
		r.Get(handler.RouteDeleteMessage, contactsHandler.Delete)
	})

	// Static assets
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
