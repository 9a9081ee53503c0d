// Package console ties the navigation shell to the resource controllers
// of one signed-in browser session.
package console

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/odyssey-erp/odyssey-pos/internal/masterdata/categories"
	"github.com/odyssey-erp/odyssey-pos/internal/masterdata/products"
	"github.com/odyssey-erp/odyssey-pos/internal/nav"
	"github.com/odyssey-erp/odyssey-pos/internal/permissions"
	"github.com/odyssey-erp/odyssey-pos/internal/resource"
	"github.com/odyssey-erp/odyssey-pos/internal/roles"
	"github.com/odyssey-erp/odyssey-pos/internal/tables"
	"github.com/odyssey-erp/odyssey-pos/internal/users"
)

// Sections maps every menu leaf to the controllers its screen needs.
// The first entry is the screen's own collection.
var Sections = map[string][]string{
	"dashboard":     {"users", "tables", "products"},
	"users":         {"users", "roles"},
	"roles":         {"roles", "permissions"},
	"permissions":   {"permissions"},
	"categories":    {"categories"},
	"products-list": {"products", "categories"},
	"tables":        {"tables"},
}

// Workspace is the navigation shell plus one controller per collection,
// owned by a single browser session.
type Workspace struct {
	Shell       *nav.Shell
	Users       *users.Controller
	Roles       *roles.Controller
	Permissions *permissions.Controller
	Categories  *categories.Controller
	Products    *products.Controller
	Tables      *tables.Controller

	mu     sync.Mutex
	mounts map[string]resource.Mount
}

// NewWorkspace builds a workspace whose controllers share client.
func NewWorkspace(client resource.Doer, logger *slog.Logger) *Workspace {
	ws := &Workspace{
		Shell:       nav.NewShell(),
		Users:       users.NewController(client, logger),
		Roles:       roles.NewController(client, logger),
		Permissions: permissions.NewController(client, logger),
		Categories:  categories.NewController(client, logger),
		Products:    products.NewController(client, logger),
		Tables:      tables.NewController(client, logger),
	}
	ws.mounts = map[string]resource.Mount{
		"users":       ws.Users,
		"roles":       ws.Roles,
		"permissions": ws.Permissions,
		"categories":  ws.Categories,
		"products":    ws.Products,
		"tables":      ws.Tables,
	}
	return ws
}

// Activate makes section the active view; re-activating the current
// section leaves the overlay as it is. Controllers the section does
// not need are detached; the needed ones are loaded together unless they
// already hold a successful load. refresh forces the reload.
func (ws *Workspace) Activate(ctx context.Context, section string, refresh bool) error {
	needed, ok := Sections[section]
	if !ok {
		return nav.ErrUnknownItem
	}
	if ws.Shell.Active() != section {
		if err := ws.Shell.Select(section); err != nil {
			return err
		}
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()
	for name, m := range ws.mounts {
		if !slices.Contains(needed, name) && m.Status() != resource.StatusIdle {
			m.Detach()
		}
	}
	var pending []resource.Loader
	for _, name := range needed {
		m := ws.mounts[name]
		if refresh || m.Status() != resource.StatusReady {
			pending = append(pending, m)
		}
	}
	return resource.LoadAll(ctx, pending...)
}

// Failure returns the first load failure among the section's controllers.
func (ws *Workspace) Failure(section string) string {
	for _, name := range Sections[section] {
		if msg := ws.mounts[name].Failure(); msg != "" {
			return msg
		}
	}
	return ""
}

// Mounted lists the controllers that currently hold state, sorted.
func (ws *Workspace) Mounted() []string {
	var out []string
	for name, m := range ws.mounts {
		if m.Status() != resource.StatusIdle {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}

// Close detaches every controller and resets the shell.
func (ws *Workspace) Close() {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	for _, m := range ws.mounts {
		m.Detach()
	}
	ws.Shell.Reset()
}
