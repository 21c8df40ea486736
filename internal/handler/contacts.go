package handler

import (
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"

	"folio-go/internal/model"
	"folio-go/internal/render"
	"folio-go/internal/store"
)

// ContactsHandler handles the public contact form and the message
// inbox on the dashboard.
type ContactsHandler struct {
	queries   *store.Queries
	renderer  *render.Renderer
	sanitizer *bluemonday.Policy
}

// NewContactsHandler creates a new ContactsHandler.
func NewContactsHandler(db *sql.DB, renderer *render.Renderer) *ContactsHandler {
	return &ContactsHandler{
		queries:  store.New(db),
		renderer: renderer,
		// Strip all HTML from submitted text before storage
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// ContactListData is the view model for the message inbox.
type ContactListData struct {
	Messages []model.Contact
}

// Form renders the public contact form.
func (h *ContactsHandler) Form(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "contact", render.TemplateData{Title: "Contact"}); err != nil {
		logAndInternalError(w, "rendering contact page", "error", err)
	}
}

// Create handles the public contact form submission.
func (h *ContactsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteContact) {
		return
	}

	name := h.clean(r.FormValue("name"))
	email := h.clean(r.FormValue("email"))
	message := h.clean(r.FormValue("message"))

	if name == "" || email == "" || message == "" {
		flashError(w, r, h.renderer, RouteContact, "Name, email and message are required")
		return
	}

	_, err := h.queries.CreateContact(r.Context(), store.CreateContactParams{
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		flashError(w, r, h.renderer, RouteContact, fmt.Sprintf("Error sending message: %v", err))
		return
	}

	flashSuccess(w, r, h.renderer, RouteContact, "Message sent successfully!")
}

// Messages renders the contact message inbox, most recent first.
func (h *ContactsHandler) Messages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.queries.ListContacts(r.Context())
	if err != nil {
		flashError(w, r, h.renderer, RouteDashboard, fmt.Sprintf("Error loading messages: %v", err))
		return
	}

	data := render.TemplateData{Title: "Messages", Data: ContactListData{Messages: messages}}
	if err := h.renderer.Render(w, r, "messages", data); err != nil {
		logAndInternalError(w, "rendering messages page", "error", err)
	}
}

// Delete deletes a contact message by the id in the route path. The
// delete is idempotent: a missing id still reports success.
func (h *ContactsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		flashError(w, r, h.renderer, RouteMessages, "Invalid message id")
		return
	}

	if err := h.queries.DeleteContactByID(r.Context(), id); err != nil {
		flashError(w, r, h.renderer, RouteMessages, fmt.Sprintf("Error deleting message: %v", err))
		return
	}

	flashSuccess(w, r, h.renderer, RouteMessages, "Message deleted successfully!")
}

// clean strips HTML from form input and trims whitespace.
func (h *ContactsHandler) clean(s string) string {
	return strings.TrimSpace(h.sanitizer.Sanitize(s))
}
