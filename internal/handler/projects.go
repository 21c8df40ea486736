package handler

import (
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"folio-go/internal/model"
	"folio-go/internal/render"
	"folio-go/internal/store"
)

// ProjectsHandler handles the public project showcase and the
// dashboard project management routes.
type ProjectsHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewProjectsHandler creates a new ProjectsHandler.
func NewProjectsHandler(db *sql.DB, renderer *render.Renderer) *ProjectsHandler {
	return &ProjectsHandler{
		queries:  store.New(db),
		renderer: renderer,
	}
}

// ProjectListData is the view model for pages showing the project list.
type ProjectListData struct {
	Projects []model.Project
}

// List renders the public project showcase.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.queries.ListProjects(r.Context())
	if err != nil {
		flashError(w, r, h.renderer, RouteRoot, fmt.Sprintf("Error loading projects: %v", err))
		return
	}

	data := render.TemplateData{Title: "Projects", Data: ProjectListData{Projects: projects}}
	if err := h.renderer.Render(w, r, "projects", data); err != nil {
		logAndInternalError(w, "rendering projects page", "error", err)
	}
}

// Dashboard renders the admin dashboard with the project list and the
// add-project form.
func (h *ProjectsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	projects, err := h.queries.ListProjects(r.Context())
	if err != nil {
		flashError(w, r, h.renderer, RouteRoot, fmt.Sprintf("Error loading dashboard data: %v", err))
		return
	}

	data := render.TemplateData{Title: "Dashboard", Data: ProjectListData{Projects: projects}}
	if err := h.renderer.Render(w, r, "dashboard", data); err != nil {
		logAndInternalError(w, "rendering dashboard", "error", err)
	}
}

// Create handles the add-project form submission from the dashboard.
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteDashboard) {
		return
	}

	name := r.FormValue("pname")
	if name == "" {
		flashError(w, r, h.renderer, RouteDashboard, "Project name is required")
		return
	}

	_, err := h.queries.CreateProject(r.Context(), store.CreateProjectParams{
		Name:        name,
		Link:        r.FormValue("projectlink"),
		Description: r.FormValue("description"),
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		flashError(w, r, h.renderer, RouteDashboard, fmt.Sprintf("Error adding project: %v", err))
		return
	}

	flashSuccess(w, r, h.renderer, RouteDashboard, "Project added successfully!")
}

// DeleteByName deletes the first project matching the name in the
// route path. Kept for compatibility with old dashboard links; the
// delete is idempotent and a missing name still reports success.
func (h *ProjectsHandler) DeleteByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.queries.DeleteProjectByName(r.Context(), name); err != nil {
		flashError(w, r, h.renderer, RouteDashboard, fmt.Sprintf("Error deleting project: %v", err))
		return
	}

	flashSuccess(w, r, h.renderer, RouteDashboard, "Project deleted successfully!")
}

// DeleteByID deletes a project by primary key. The dashboard templates
// link here; names can collide, ids cannot.
func (h *ProjectsHandler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		flashError(w, r, h.renderer, RouteDashboard, "Invalid project id")
		return
	}

	if err := h.queries.DeleteProjectByID(r.Context(), id); err != nil {
		flashError(w, r, h.renderer, RouteDashboard, fmt.Sprintf("Error deleting project: %v", err))
		return
	}

	flashSuccess(w, r, h.renderer, RouteDashboard, "Project deleted successfully!")
}
