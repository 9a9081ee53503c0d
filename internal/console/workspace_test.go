package console

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-pos/internal/gateway"
	"github.com/odyssey-erp/odyssey-pos/internal/nav"
	"github.com/odyssey-erp/odyssey-pos/internal/resource"
	"github.com/odyssey-erp/odyssey-pos/internal/testing/backend"
)

func seededBackend(t *testing.T) *backend.Server {
	t.Helper()
	srv := backend.New(t)
	srv.Collection("/usuarios", "u", map[string]any{"id": "u1", "username": "ana", "firstName": "Ana", "lastName": "Ruiz", "roleIds": []string{"r1"}})
	srv.Collection("/roles", "r", map[string]any{"id": "r1", "name": "Admin", "permissionIds": []string{"p1"}})
	srv.Collection("/permisos", "pm", map[string]any{"id": "p1", "name": "View tables", "resource": "tables"})
	srv.Collection("/categorias", "c", map[string]any{"id": "c1", "name": "Bebidas"})
	srv.Collection("/productos", "p",
		map[string]any{"id": "p1", "name": "Limonada", "price": 12.5, "stock": 8, "categoryId": "c1"},
		map[string]any{"id": "p2", "name": "Agua", "price": 5, "stock": 20, "categoryId": "c1"},
	)
	srv.Collection("/mesas", "m",
		map[string]any{"id": "m1", "number": 1, "capacity": 4, "status": "available"},
		map[string]any{"id": "m2", "number": 2, "capacity": 2, "status": "occupied"},
	)
	return srv
}

func newWorkspace(t *testing.T) (*Workspace, *backend.Server) {
	t.Helper()
	srv := seededBackend(t)
	return NewWorkspace(gateway.New(gateway.Config{BaseURL: srv.URL}), nil), srv
}

func gets(srv *backend.Server, path string) int {
	n := 0
	for _, r := range srv.Requests() {
		if r.Method == http.MethodGet && r.Path == path {
			n++
		}
	}
	return n
}

func TestActivateMountsOnlyTheSectionControllers(t *testing.T) {
	ws, _ := newWorkspace(t)
	ctx := context.Background()

	require.NoError(t, ws.Activate(ctx, "users", false))
	assert.Equal(t, "users", ws.Shell.Active())
	assert.Equal(t, []string{"roles", "users"}, ws.Mounted())
	assert.Equal(t, resource.StatusReady, ws.Users.Status())
	assert.Equal(t, resource.StatusReady, ws.Roles.Status())

	require.NoError(t, ws.Activate(ctx, "categories", false))
	assert.Equal(t, []string{"categories"}, ws.Mounted())
	assert.Equal(t, resource.StatusIdle, ws.Users.Status())
	assert.Empty(t, ws.Users.Snapshot().Items)
}

func TestActivateSkipsReadyControllersUnlessRefreshing(t *testing.T) {
	ws, srv := newWorkspace(t)
	ctx := context.Background()

	require.NoError(t, ws.Activate(ctx, "products-list", false))
	require.NoError(t, ws.Activate(ctx, "products-list", false))
	assert.Equal(t, 1, gets(srv, "/productos"))
	assert.Equal(t, 1, gets(srv, "/categorias"))

	require.NoError(t, ws.Activate(ctx, "products-list", true))
	assert.Equal(t, 2, gets(srv, "/productos"))
	assert.Equal(t, 2, gets(srv, "/categorias"))
}

func TestActivateJointFailure(t *testing.T) {
	ws, srv := newWorkspace(t)
	srv.Fail(http.MethodGet, "/permisos", backend.Failure{Status: http.StatusInternalServerError})

	err := ws.Activate(context.Background(), "roles", false)
	require.Error(t, err)
	assert.Equal(t, resource.StatusReady, ws.Roles.Status())
	assert.Equal(t, resource.StatusLoadFailed, ws.Permissions.Status())
	assert.Equal(t, "Failed to load permissions", ws.Failure("roles"))

	srv.Clear()
	require.NoError(t, ws.Activate(context.Background(), "roles", false))
	assert.Empty(t, ws.Failure("roles"))
}

func TestActivateRejectsParentsAndUnknownSections(t *testing.T) {
	ws, srv := newWorkspace(t)
	require.ErrorIs(t, ws.Activate(context.Background(), "access", false), nav.ErrUnknownItem)
	require.ErrorIs(t, ws.Activate(context.Background(), "kitchen", false), nav.ErrUnknownItem)
	assert.Equal(t, "dashboard", ws.Shell.Active())
	assert.Empty(t, srv.Requests())
}

func TestDashboardCounts(t *testing.T) {
	ws, srv := newWorkspace(t)
	srv.Fail(http.MethodGet, "/usuarios", backend.Failure{Status: http.StatusBadGateway, Body: `{"message":"upstream down"}`})

	require.Error(t, ws.Activate(context.Background(), nav.Initial, false))
	d := ws.Dashboard()
	require.Len(t, d.Stats, 3)
	assert.Equal(t, Stat{Label: "Users", Notice: "upstream down"}, d.Stats[0])
	assert.Equal(t, Stat{Label: "Tables", Count: 2, Ready: true}, d.Stats[1])
	assert.Equal(t, Stat{Label: "Products", Count: 2, Ready: true}, d.Stats[2])
	assert.Equal(t, 1, d.Tables.Occupied)
	assert.Equal(t, 6, d.Tables.Seats)
}

func TestRegistryKeepsOneWorkspacePerSession(t *testing.T) {
	srv := seededBackend(t)
	reg := NewRegistry(gateway.New(gateway.Config{BaseURL: srv.URL}), nil, time.Hour)

	a := reg.Get("session-a")
	assert.Same(t, a, reg.Get("session-a"))
	assert.NotSame(t, a, reg.Get("session-b"))
	assert.Equal(t, 2, reg.Len())

	require.NoError(t, a.Activate(context.Background(), "tables", false))
	reg.Drop("session-a")
	assert.Equal(t, resource.StatusIdle, a.Tables.Status())
	assert.Equal(t, "dashboard", a.Shell.Active())

	fresh := reg.Get("session-a")
	assert.NotSame(t, a, fresh)
	assert.Equal(t, "dashboard", fresh.Shell.Active())
}

func TestRegistrySweepEvictsIdleWorkspaces(t *testing.T) {
	srv := seededBackend(t)
	reg := NewRegistry(gateway.New(gateway.Config{BaseURL: srv.URL}), nil, time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return now }

	reg.Get("old")
	now = now.Add(30 * time.Second)
	reg.Get("recent")
	now = now.Add(45 * time.Second)

	assert.Equal(t, 1, reg.Sweep())
	assert.Equal(t, 1, reg.Len())
	assert.Zero(t, NewRegistry(nil, nil, 0).Sweep())
}
