package roles_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-pos/internal/gateway"
	"github.com/odyssey-erp/odyssey-pos/internal/resource"
	"github.com/odyssey-erp/odyssey-pos/internal/roles"
	"github.com/odyssey-erp/odyssey-pos/internal/testing/backend"
)

func TestDecodeAcceptsEmbeddedPermissions(t *testing.T) {
	var r roles.Role
	raw := `{"id":"r1","name":"Cajero","permissions":[{"id":"p1","name":"View tables"},{"id":2}]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &r))
	assert.Equal(t, resource.Refs{"p1", "2"}, r.PermissionIDs)
}

func TestUpdateSendsOnlyChangedPermissionList(t *testing.T) {
	srv := backend.New(t)
	srv.Collection(roles.Path, "r", map[string]any{"id": "r1", "name": "Cajero", "description": "Front desk", "permissionIds": []string{"p1"}})
	ctrl := roles.NewController(gateway.New(gateway.Config{BaseURL: srv.URL}), nil)
	require.NoError(t, ctrl.Load(context.Background()))

	form := url.Values{"name": {"Cajero"}, "description": {"Front desk"}, "permissionIds": {"p1", "p2"}}
	require.NoError(t, ctrl.Update(context.Background(), "r1", roles.Bind(form)))

	for _, req := range srv.Requests() {
		if req.Method == http.MethodPatch {
			assert.Equal(t, "/roles/r1", req.Path)
			assert.Equal(t, map[string]any{"permissionIds": []any{"p1", "p2"}}, req.Body)
		}
	}
	item, ok := ctrl.Find("r1")
	require.True(t, ok)
	assert.Equal(t, resource.Refs{"p1", "p2"}, item.PermissionIDs)
}

func TestRowsOmitDanglingPermissions(t *testing.T) {
	rows := roles.Rows([]roles.Role{{ID: "r1", Name: "Admin", PermissionIDs: resource.Refs{"p1", "p9"}}}, map[string]string{"p1": "View tables"})
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"View tables"}, rows[0].Permissions)
}
