// Package handler contains the HTTP handlers for the public site, the
// auth flow and the admin dashboard.
package handler

import (
	"net/http"

	"folio-go/internal/render"
)

// PagesHandler serves the static informational pages.
type PagesHandler struct {
	renderer *render.Renderer
}

// NewPagesHandler creates a new PagesHandler.
func NewPagesHandler(renderer *render.Renderer) *PagesHandler {
	return &PagesHandler{renderer: renderer}
}

// Home renders the home page.
func (h *PagesHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "home", "Home")
}

// About renders the about page.
func (h *PagesHandler) About(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "about", "About Me")
}

// Skills renders the skills page.
func (h *PagesHandler) Skills(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "skills", "Skills")
}

func (h *PagesHandler) renderPage(w http.ResponseWriter, r *http.Request, name, title string) {
	if err := h.renderer.Render(w, r, name, render.TemplateData{Title: title}); err != nil {
		logAndInternalError(w, "rendering page", "template", name, "error", err)
	}
}
