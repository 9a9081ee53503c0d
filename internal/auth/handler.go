package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/odyssey-erp/odyssey-pos/internal/shared"
	"github.com/odyssey-erp/odyssey-pos/internal/view"
)

// Releaser discards per-session state when an operator signs out.
type Releaser interface {
	Drop(sessionID string)
}

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger         *slog.Logger
	authenticator  Authenticator
	templates      *view.Engine
	sessionManager *shared.SessionManager
	csrfManager    *shared.CSRFManager
	releaser       Releaser
	validator      *validator.Validate
}

// NewHandler constructs a Handler instance. releaser may be nil.
func NewHandler(logger *slog.Logger, authenticator Authenticator, templates *view.Engine, sessions *shared.SessionManager, csrf *shared.CSRFManager, releaser Releaser) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:         logger,
		authenticator:  authenticator,
		templates:      templates,
		sessionManager: sessions,
		csrfManager:    csrf,
		releaser:       releaser,
		validator:      validator.New(),
	}
}

// MountRoutes registers auth routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/login", h.showLogin)
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
}

type loginForm struct {
	Identifier string `validate:"required"`
	Password   string `validate:"required"`
}

type loginPageData struct {
	Form   loginForm
	Errors map[string]string
}

var fieldMessages = map[string]string{
	"Identifier": "Enter your username or email",
	"Password":   "Enter your password",
}

func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess.SignedIn() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render(w, r, loginPageData{}, http.StatusOK)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.logger.Error("session missing during login")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	form := loginForm{
		Identifier: strings.TrimSpace(r.PostFormValue("identifier")),
		Password:   r.PostFormValue("password"),
	}
	errs := make(map[string]string)
	if err := h.validator.Struct(form); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fieldErr := range fieldErrs {
				errs[fieldErr.Field()] = fieldMessages[fieldErr.Field()]
			}
		}
	}

	if len(errs) == 0 {
		principal, err := h.authenticator.Authenticate(r.Context(), Credentials{Identifier: form.Identifier, Password: form.Password})
		switch {
		case err == nil:
			sess.SignIn(shared.Operator{ID: principal.ID, Name: principal.Name})
			sess.Notify(shared.FlashSuccess, "Welcome back, "+principal.Name)
			h.logger.Info("operator signed in", slog.String("operator", principal.ID))
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			errs["general"] = "Sign-in was interrupted, please try again"
		default:
			h.logger.Warn("sign-in rejected", slog.Any("error", err))
			errs["general"] = "Invalid username or password"
		}
	}

	form.Password = ""
	h.render(w, r, loginPageData{Form: form, Errors: errs}, http.StatusBadRequest)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		if h.releaser != nil {
			h.releaser.Drop(sess.ID)
		}
		h.sessionManager.Destroy(sess)
	}
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, data loginPageData, status int) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrfManager.EnsureToken(sess)
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{
		Title:       "Sign in",
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.templates.Render(w, "auth/login", viewData); err != nil {
		h.logger.Error("render login", slog.Any("error", err))
	}
}
