package roles

import (
	"log/slog"

	"github.com/odyssey-erp/odyssey-pos/internal/resource"
)

// Path is the backend collection path.
const Path = "/roles"

// Controller mirrors the roles collection.
type Controller = resource.Controller[Role, Draft]

// Definition describes roles to the generic controller. Users reference
// roles, so a refused delete is reported as a conflict.
func Definition() resource.Definition[Role, Draft] {
	return resource.Definition[Role, Draft]{
		Name:       "roles",
		Noun:       "role",
		Plural:     "roles",
		Path:       Path,
		Dependents: "users",
		ID:         func(r Role) string { return r.ID.String() },
		Label:      func(r Role) string { return r.Name },
		Blank:      func() Draft { return Draft{PermissionIDs: []string{}} },
		Edit: func(r Role) Draft {
			return Draft{Name: r.Name, Description: r.Description, PermissionIDs: r.PermissionIDs.Strings()}
		},
		Encode: func(d Draft) (resource.Payload, error) {
			ids := d.PermissionIDs
			if ids == nil {
				ids = []string{}
			}
			return resource.Payload{
				"name":          d.Name,
				"description":   d.Description,
				"permissionIds": ids,
			}, nil
		},
	}
}

// NewController builds the roles controller.
func NewController(client resource.Doer, logger *slog.Logger) *Controller {
	return resource.New(Definition(), client, logger)
}
