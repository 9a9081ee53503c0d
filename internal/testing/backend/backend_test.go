package backend

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(t *testing.T, srv *Server, path string, body map[string]any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(srv.URL+prefix+path, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestCreatedIdentifiersSkipSeededOnes(t *testing.T) {
	srv := New(t)
	srv.Collection("/categorias", "c",
		map[string]any{"id": "c1", "name": "Bebidas"},
		map[string]any{"id": "c2", "name": "Postres"},
	)

	created := post(t, srv, "/categorias", map[string]any{"name": "Entradas"})
	assert.Equal(t, "c3", created["id"])
	next := post(t, srv, "/categorias", map[string]any{"name": "Sopas"})
	assert.Equal(t, "c4", next["id"])
	assert.Len(t, srv.Items("/categorias"), 4)
}

func TestNumericSeededIdentifiersAreAddressable(t *testing.T) {
	srv := New(t)
	srv.Collection("/mesas", "m", map[string]any{"id": 1, "number": 1})

	req, err := http.NewRequest(http.MethodDelete, srv.URL+prefix+"/mesas/1", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, srv.Items("/mesas"))
}
