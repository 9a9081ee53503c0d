package console

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/odyssey-pos/internal/masterdata/categories"
	"github.com/odyssey-erp/odyssey-pos/internal/masterdata/products"
	"github.com/odyssey-erp/odyssey-pos/internal/permissions"
	"github.com/odyssey-erp/odyssey-pos/internal/resource"
	resourcehttp "github.com/odyssey-erp/odyssey-pos/internal/resource/http"
	"github.com/odyssey-erp/odyssey-pos/internal/roles"
	"github.com/odyssey-erp/odyssey-pos/internal/tables"
	"github.com/odyssey-erp/odyssey-pos/internal/users"
)

// MountScreens registers the six resource screens.
func (h *Handler) MountScreens(r chi.Router) {
	mount(r, h, "users", "Users", "/users", users.Bind,
		func(ws *Workspace) *users.Controller { return ws.Users },
		func(ws *Workspace) func([]users.User) any {
			names := ws.Roles.Names()
			return func(items []users.User) any { return users.Rows(items, names) }
		},
		func(ws *Workspace) func() any {
			return func() any { return ws.Roles.Choices() }
		})

	mount(r, h, "roles", "Roles", "/roles", roles.Bind,
		func(ws *Workspace) *roles.Controller { return ws.Roles },
		func(ws *Workspace) func([]roles.Role) any {
			names := ws.Permissions.Names()
			return func(items []roles.Role) any { return roles.Rows(items, names) }
		},
		func(ws *Workspace) func() any {
			return func() any { return ws.Permissions.Choices() }
		})

	mount(r, h, "permissions", "Permissions", "/permissions", permissions.Bind,
		func(ws *Workspace) *permissions.Controller { return ws.Permissions },
		func(*Workspace) func([]permissions.Permission) any {
			return func(items []permissions.Permission) any { return permissions.Groups(items) }
		},
		nil)

	mount(r, h, "categories", "Categories", "/categories", categories.Bind,
		func(ws *Workspace) *categories.Controller { return ws.Categories },
		nil, nil)

	mount(r, h, "products-list", "Products", "/products", products.Bind,
		func(ws *Workspace) *products.Controller { return ws.Products },
		func(ws *Workspace) func([]products.Product) any {
			names := ws.Categories.Names()
			return func(items []products.Product) any { return products.Groups(items, names) }
		},
		func(ws *Workspace) func() any {
			return func() any { return ws.Categories.Choices() }
		})

	mount(r, h, "tables", "Tables", "/tables", tables.Bind,
		func(ws *Workspace) *tables.Controller { return ws.Tables },
		nil,
		func(*Workspace) func() any {
			return func() any { return tables.Statuses }
		})
}

// template names follow "<collection>/list" and "<collection>/form".
func mount[E any, D any](
	r chi.Router,
	h *Handler,
	section, title, base string,
	bind func(url.Values) D,
	controller func(*Workspace) *resource.Controller[E, D],
	rows func(*Workspace) func([]E) any,
	choices func(*Workspace) func() any,
) {
	resolve := func(req *http.Request, refresh bool) (resourcehttp.Scope[E, D], error) {
		ws, err := h.Workspace(req)
		if err != nil {
			return resourcehttp.Scope[E, D]{}, err
		}
		if err := ws.Activate(req.Context(), section, refresh); err != nil {
			h.logger.Warn("section load failed", slog.String("section", section), slog.Any("error", err))
		}
		scope := resourcehttp.Scope[E, D]{
			Controller: controller(ws),
			Nav:        ws.Shell.View(),
			Failure:    ws.Failure(section),
		}
		if rows != nil {
			scope.Rows = rows(ws)
		}
		if choices != nil {
			scope.Choices = choices(ws)
		}
		return scope, nil
	}

	name := controllerName(section)
	screen := resourcehttp.NewHandler(h.logger, h.templates, h.csrf, resourcehttp.Screen[E, D]{
		Section: section,
		Title:   title,
		Base:    base,
		List:    name + "/list",
		Form:    name + "/form",
		Bind:    bind,
		Resolve: resolve,
	})
	r.Route(base, screen.MountRoutes)
}

func controllerName(section string) string {
	if names := Sections[section]; len(names) > 0 {
		return names[0]
	}
	return section
}
