package roles

import (
	"net/url"

	"github.com/odyssey-erp/odyssey-pos/internal/resource"
)

// Bind reads a posted role form.
func Bind(form url.Values) Draft {
	return Draft{
		Name:          resource.FormValue(form, "name"),
		Description:   resource.FormValue(form, "description"),
		PermissionIDs: resource.FormList(form, "permissionIds"),
	}
}

// Row is a role prepared for the list screen.
type Row struct {
	Role
	Permissions []string
}

// Rows resolves permission names; dangling references are omitted.
func Rows(items []Role, permissionNames map[string]string) []Row {
	rows := make([]Row, 0, len(items))
	for _, r := range items {
		rows = append(rows, Row{Role: r, Permissions: r.PermissionIDs.Resolve(permissionNames)})
	}
	return rows
}
