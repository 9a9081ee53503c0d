package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/odyssey-pos/internal/nav"
	"github.com/odyssey-erp/odyssey-pos/internal/platform/httpx"
	"github.com/odyssey-erp/odyssey-pos/internal/resource"
	"github.com/odyssey-erp/odyssey-pos/internal/shared"
	"github.com/odyssey-erp/odyssey-pos/internal/view"
)

// ConfirmTemplate is the shared delete confirmation page.
const ConfirmTemplate = "resource/confirm"

// Handler serves one resource screen.
type Handler[E any, D any] struct {
	logger    *slog.Logger
	templates *view.Engine
	csrf      *shared.CSRFManager
	screen    Screen[E, D]
}

// NewHandler constructs a Handler.
func NewHandler[E any, D any](logger *slog.Logger, templates *view.Engine, csrf *shared.CSRFManager, screen Screen[E, D]) *Handler[E, D] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler[E, D]{
		logger:    logger.With(slog.String("section", screen.Section)),
		templates: templates,
		csrf:      csrf,
		screen:    screen,
	}
}

// MountRoutes registers the screen routes on r.
func (h *Handler[E, D]) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/new", h.newForm)
	r.Get("/{id}/edit", h.editForm)
	r.Post("/{id}", h.update)
	r.Get("/{id}/delete", h.confirmDelete)
	r.Post("/{id}/delete", h.delete)
}

func (h *Handler[E, D]) list(w http.ResponseWriter, r *http.Request) {
	refresh := r.URL.Query().Get("refresh") == "1"
	scope, ok := h.resolve(w, r, refresh)
	if !ok {
		return
	}
	snap := scope.Controller.Snapshot()
	if snap.Items == nil {
		snap.Items = []E{}
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, snap)
		return
	}

	var rows any = snap.Items
	if scope.Rows != nil {
		rows = scope.Rows(snap.Items)
	}
	h.render(w, r, scope.Nav, h.screen.List, ListPage{
		Section:  h.screen.Section,
		Title:    h.screen.Title,
		Base:     h.screen.Base,
		Status:   snap.Status,
		Message:  snap.Message,
		Failure:  scope.Failure,
		Rows:     rows,
		Count:    len(snap.Items),
		Loading:  snap.Status == resource.StatusLoading,
		Mutating: snap.Status == resource.StatusMutating,
	}, http.StatusOK)
}

func (h *Handler[E, D]) newForm(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.resolve(w, r, false)
	if !ok {
		return
	}
	dialog := resource.NewDialog(scope.Controller)
	dialog.OpenCreate()
	h.renderForm(w, r, scope, dialog, nil, http.StatusOK)
}

func (h *Handler[E, D]) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	scope, ok := h.resolve(w, r, false)
	if !ok {
		return
	}
	dialog := resource.NewDialog(scope.Controller)
	dialog.OpenCreate()
	dialog.SetDraft(h.screen.Bind(r.PostForm))
	if err := dialog.Submit(r.Context()); err != nil {
		h.renderForm(w, r, scope, dialog, err, failureStatus(err))
		return
	}
	h.redirectWithFlash(w, r, h.screen.Base, shared.FlashSuccess, scope.Controller.Definition().SuccessNotice(resource.OpCreate))
}

func (h *Handler[E, D]) editForm(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.resolve(w, r, false)
	if !ok {
		return
	}
	dialog := resource.NewDialog(scope.Controller)
	if err := dialog.OpenEdit(itemID(r)); err != nil {
		h.redirectWithFlash(w, r, h.screen.Base, shared.FlashError, scope.Controller.Notice(resource.OpUpdate, err))
		return
	}
	h.renderForm(w, r, scope, dialog, nil, http.StatusOK)
}

func (h *Handler[E, D]) update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	scope, ok := h.resolve(w, r, false)
	if !ok {
		return
	}
	dialog := resource.NewDialog(scope.Controller)
	if err := dialog.OpenEdit(itemID(r)); err != nil {
		h.redirectWithFlash(w, r, h.screen.Base, shared.FlashError, scope.Controller.Notice(resource.OpUpdate, err))
		return
	}
	dialog.SetDraft(h.screen.Bind(r.PostForm))
	if err := dialog.Submit(r.Context()); err != nil {
		h.renderForm(w, r, scope, dialog, err, failureStatus(err))
		return
	}
	h.redirectWithFlash(w, r, h.screen.Base, shared.FlashSuccess, scope.Controller.Definition().SuccessNotice(resource.OpUpdate))
}

func (h *Handler[E, D]) confirmDelete(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.resolve(w, r, false)
	if !ok {
		return
	}
	id := itemID(r)
	if _, found := scope.Controller.Find(id); !found {
		h.redirectWithFlash(w, r, h.screen.Base, shared.FlashError, scope.Controller.Notice(resource.OpDelete, resource.ErrNotFound))
		return
	}
	h.render(w, r, scope.Nav, ConfirmTemplate, ConfirmPage{
		Section: h.screen.Section,
		Title:   h.screen.Title,
		Base:    h.screen.Base,
		ID:      id,
		Prompt:  scope.Controller.Prompt(id),
		Action:  itemPath(h.screen.Base, id) + "/delete",
	}, http.StatusOK)
}

func (h *Handler[E, D]) delete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	scope, ok := h.resolve(w, r, false)
	if !ok {
		return
	}
	approved := r.PostForm.Get("confirm") == "yes"
	confirm := resource.ConfirmFunc(func(_ context.Context, _ string) bool { return approved })

	err := scope.Controller.Delete(r.Context(), itemID(r), confirm)
	switch {
	case err == nil:
		h.redirectWithFlash(w, r, h.screen.Base, shared.FlashSuccess, scope.Controller.Definition().SuccessNotice(resource.OpDelete))
	case errors.Is(err, resource.ErrNotConfirmed):
		h.redirectWithFlash(w, r, h.screen.Base, shared.FlashInfo, scope.Controller.Notice(resource.OpDelete, err))
	default:
		h.logger.Warn("delete failed", slog.Any("error", err))
		h.redirectWithFlash(w, r, h.screen.Base, shared.FlashError, scope.Controller.Notice(resource.OpDelete, err))
	}
}

func (h *Handler[E, D]) resolve(w http.ResponseWriter, r *http.Request, refresh bool) (Scope[E, D], bool) {
	scope, err := h.screen.Resolve(r, refresh)
	if err == nil {
		return scope, true
	}
	if errors.Is(err, nav.ErrUnknownItem) {
		err = fmt.Errorf("%w: %w", httpx.ErrNotFound, err)
	} else {
		h.logger.Error("resolve screen", slog.Any("error", err))
	}
	if wantsJSON(r) {
		httpx.RespondError(w, err)
		return scope, false
	}
	if errors.Is(err, httpx.ErrNotFound) {
		http.NotFound(w, r)
		return scope, false
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	return scope, false
}

func (h *Handler[E, D]) renderForm(w http.ResponseWriter, r *http.Request, scope Scope[E, D], dialog *resource.Dialog[E, D], err error, status int) {
	page := FormPage[D]{
		Section: h.screen.Section,
		Title:   h.screen.Title,
		Base:    h.screen.Base,
		Edit:    dialog.Mode() == resource.ModeEdit,
		ID:      dialog.ID(),
		Action:  h.screen.Base,
		Draft:   dialog.Draft(),
	}
	if page.Edit {
		page.Action = itemPath(h.screen.Base, page.ID)
	}
	if scope.Choices != nil {
		page.Choices = scope.Choices()
	}
	if err != nil {
		op := resource.OpCreate
		if page.Edit {
			op = resource.OpUpdate
		}
		var ve *resource.ValidationError
		if errors.As(err, &ve) {
			page.Errors = ve.Messages()
		}
		page.Notice = scope.Controller.Notice(op, err)
	}
	h.render(w, r, scope.Nav, h.screen.Form, page, status)
}

func (h *Handler[E, D]) render(w http.ResponseWriter, r *http.Request, shell nav.View, template string, data any, status int) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(sess)
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{
		Title:       h.screen.Title,
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Nav:         shell,
		Data:        data,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.templates.Render(w, template, viewData); err != nil {
		h.logger.Error("render template", slog.Any("error", err), slog.String("template", template))
	}
}

func (h *Handler[E, D]) redirectWithFlash(w http.ResponseWriter, r *http.Request, location, kind, message string) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.Notify(kind, message)
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// itemID returns the decoded {id} route parameter.
func itemID(r *http.Request) string {
	raw := chi.URLParam(r, "id")
	if id, err := url.PathUnescape(raw); err == nil {
		return id
	}
	return raw
}

func itemPath(base, id string) string {
	return base + "/" + url.PathEscape(id)
}

func failureStatus(err error) int {
	switch {
	case errors.Is(err, resource.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, resource.ErrBusy):
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		r.URL.Query().Get("format") == "json"
}
