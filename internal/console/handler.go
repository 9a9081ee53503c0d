package console

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/odyssey-pos/internal/nav"
	"github.com/odyssey-erp/odyssey-pos/internal/platform/httpx"
	"github.com/odyssey-erp/odyssey-pos/internal/shared"
	"github.com/odyssey-erp/odyssey-pos/internal/view"
)

// ErrNoSession is returned when a request carries no session.
var ErrNoSession = fmt.Errorf("console: session missing: %w", httpx.ErrUnauthorized)

// Handler serves the dashboard and the navigation actions.
type Handler struct {
	logger    *slog.Logger
	registry  *Registry
	templates *view.Engine
	csrf      *shared.CSRFManager
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, registry *Registry, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, registry: registry, templates: templates, csrf: csrf}
}

// Workspace returns the workspace of the request's session.
func (h *Handler) Workspace(r *http.Request) (*Workspace, error) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil || sess.ID == "" {
		return nil, ErrNoSession
	}
	return h.registry.Get(sess.ID), nil
}

// MountRoutes registers the dashboard and navigation routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.dashboard)
	r.Post("/nav/toggle/{id}", h.toggle)
	r.Post("/nav/overlay", h.overlay)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	ws, err := h.Workspace(r)
	if err != nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	if err := ws.Activate(r.Context(), nav.Initial, r.URL.Query().Get("refresh") == "1"); err != nil {
		h.logger.Warn("dashboard load failed", slog.Any("error", err))
	}

	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(sess)
	viewData := view.TemplateData{
		Title:       "Dashboard",
		CSRFToken:   csrfToken,
		Flash:       sess.PopFlash(),
		CurrentPath: r.URL.Path,
		Nav:         ws.Shell.View(),
		Data:        ws.Dashboard(),
	}
	if err := h.templates.Render(w, "console/dashboard", viewData); err != nil {
		h.logger.Error("render dashboard", slog.Any("error", err))
	}
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request) {
	ws, err := h.Workspace(r)
	if err != nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	id := chi.URLParam(r, "id")
	item, ok := nav.Lookup(id)
	if !ok || !item.Parent() {
		http.NotFound(w, r)
		return
	}
	if err := ws.Shell.Select(id); err != nil {
		http.NotFound(w, r)
		return
	}
	h.back(w, r, ws)
}

func (h *Handler) overlay(w http.ResponseWriter, r *http.Request) {
	ws, err := h.Workspace(r)
	if err != nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	ws.Shell.ToggleOverlay()
	h.back(w, r, ws)
}

// back returns to the active screen.
func (h *Handler) back(w http.ResponseWriter, r *http.Request, ws *Workspace) {
	location := nav.Path(ws.Shell.Active())
	if location == "" {
		location = "/"
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}
