package e2e

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-pos/internal/app"
	"github.com/odyssey-erp/odyssey-pos/internal/auth"
	"github.com/odyssey-erp/odyssey-pos/internal/console"
	"github.com/odyssey-erp/odyssey-pos/internal/gateway"
	"github.com/odyssey-erp/odyssey-pos/internal/observability"
	"github.com/odyssey-erp/odyssey-pos/internal/shared"
	"github.com/odyssey-erp/odyssey-pos/internal/testing/backend"
	"github.com/odyssey-erp/odyssey-pos/internal/testing/browser"
	"github.com/odyssey-erp/odyssey-pos/internal/view"
	_ "github.com/odyssey-erp/odyssey-pos/testing"
)

func newConsole(t *testing.T) (*browser.Browser, *backend.Server) {
	t.Helper()
	srv := backend.New(t)
	srv.Collection("/usuarios", "u")
	srv.Collection("/roles", "r")
	srv.Collection("/permisos", "pm")
	srv.Collection("/categorias", "c", map[string]any{"id": 1, "name": "Bebidas"})
	srv.Collection("/productos", "p",
		map[string]any{"id": 10, "name": "Limonada", "price": "12.5", "stock": 8, "category": map[string]any{"id": 1, "name": "Bebidas"}},
		map[string]any{"id": 11, "name": "Pan", "price": 3, "stock": 1},
	)
	srv.Collection("/mesas", "m")

	cfg := &app.Config{
		AppEnv:             "test",
		AppRequestTimeout:  5 * time.Second,
		SessionTTL:         time.Hour,
		RateLimitPerMinute: 1000,
	}
	sessions := browser.Sessions(t)
	csrf := shared.NewCSRFManager("csrfsecret")
	templates, err := view.NewEngine()
	require.NoError(t, err)
	metrics := observability.NewMetrics()
	client := gateway.New(gateway.Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, gateway.WithRecorder(metrics))
	registry := console.NewRegistry(client, nil, cfg.SessionTTL)

	router := app.NewRouter(app.RouterParams{
		Logger:         app.NewLogger(cfg),
		Config:         cfg,
		SessionManager: sessions,
		CSRFManager:    csrf,
		AuthHandler:    auth.NewHandler(nil, auth.NewPlaceholder(0), templates, sessions, csrf, registry),
		ConsoleHandler: console.NewHandler(nil, registry, templates, csrf),
		Metrics:        metrics,
	})
	return browser.New(t, router), srv
}

func TestOperatorSession(t *testing.T) {
	b, srv := newConsole(t)

	health := b.Get("/healthz")
	assert.Equal(t, http.StatusOK, health.Status)
	assert.JSONEq(t, `{"status":"ok"}`, health.Body)

	css := b.Get("/static/css/console.css")
	assert.Equal(t, http.StatusOK, css.Status)
	assert.Equal(t, "public, max-age=3600", css.Header.Get("Cache-Control"))

	gate := b.Get("/products")
	require.Equal(t, http.StatusSeeOther, gate.Status)
	assert.Equal(t, "/auth/login", gate.Location)

	login := b.Get("/auth/login")
	require.Equal(t, http.StatusOK, login.Status)
	assert.Equal(t, "DENY", login.Header.Get("X-Frame-Options"))
	res := b.Post("/auth/login", url.Values{"identifier": {"cajero"}, "password": {"1234"}})
	require.Equal(t, http.StatusSeeOther, res.Status)

	products := b.Get("/products")
	require.Equal(t, http.StatusOK, products.Status)
	assert.Contains(t, products.Body, "$12.50")
	assert.Contains(t, products.Body, "Bebidas")
	assert.Contains(t, products.Body, "Uncategorized")
	assert.Contains(t, products.Body, `<a class="nav-link active" href="/products"`)

	metrics := b.Get("/metrics")
	assert.Contains(t, metrics.Body, `odyssey_backend_requests_total{method="GET",outcome="ok",resource="productos"} 1`)
	assert.Contains(t, metrics.Body, `odyssey_backend_requests_total{method="GET",outcome="ok",resource="categorias"} 1`)

	require.Equal(t, http.StatusSeeOther, b.Post("/auth/logout", nil).Status)
	b.Get("/auth/login")
	require.Equal(t, http.StatusSeeOther, b.Post("/auth/login", url.Values{"identifier": {"cajero"}, "password": {"1234"}}).Status)

	home := b.Get("/")
	require.Equal(t, http.StatusOK, home.Status)
	assert.Contains(t, home.Body, `<a class="nav-link active" href="/"`)
	assert.Equal(t, 2, countPath(srv, "/productos"), "signing out discards the loaded mirrors")
}

func countPath(srv *backend.Server, path string) int {
	n := 0
	for _, r := range srv.Requests() {
		if r.Path == path {
			n++
		}
	}
	return n
}
