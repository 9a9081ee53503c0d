package permissions

import (
	"log/slog"
	"strings"

	"github.com/odyssey-erp/odyssey-pos/internal/resource"
)

// Path is the backend collection path.
const Path = "/permisos"

// Controller mirrors the permissions collection.
type Controller = resource.Controller[Permission, Draft]

// Definition describes permissions to the generic controller. Roles
// reference permissions, so a refused delete is reported as a conflict.
func Definition() resource.Definition[Permission, Draft] {
	return resource.Definition[Permission, Draft]{
		Name:       "permissions",
		Noun:       "permission",
		Plural:     "permissions",
		Path:       Path,
		Dependents: "roles",
		ID:         func(p Permission) string { return p.ID.String() },
		Label:      func(p Permission) string { return p.Name },
		Blank:      func() Draft { return Draft{} },
		Edit: func(p Permission) Draft {
			return Draft{Name: p.Name, Slug: p.Slug, Action: p.Action, Resource: p.Resource, Description: p.Description}
		},
		Encode: func(d Draft) (resource.Payload, error) {
			return resource.Payload{
				"name":        d.Name,
				"slug":        strings.ToLower(d.Slug),
				"action":      d.Action,
				"resource":    d.Resource,
				"description": d.Description,
			}, nil
		},
	}
}

// NewController builds the permissions controller.
func NewController(client resource.Doer, logger *slog.Logger) *Controller {
	return resource.New(Definition(), client, logger)
}
