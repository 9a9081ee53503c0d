package view

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-pos/internal/nav"
)

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine()
	assert.NoError(t, err, "Templates should parse without error")
	assert.NotNil(t, engine)
}

func TestRenderLoginPage(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, engine.Render(rec, "auth/login", TemplateData{Title: "Sign in", CSRFToken: "tok"}))
	assert.Contains(t, rec.Body.String(), "<form")
	assert.Contains(t, rec.Body.String(), `value="tok"`)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestRenderShellMarksActiveLeaf(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	shell := nav.NewShell()
	require.NoError(t, shell.Select("tables"))
	rec := httptest.NewRecorder()
	require.NoError(t, engine.Render(rec, "console/dashboard", TemplateData{Title: "Dashboard", Nav: shell.View()}))
	assert.Contains(t, rec.Body.String(), `<a class="nav-link active" href="/tables"`)
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$12.50", printer.Sprintf("$%.2f", 12.5))
}
