// Package nav holds the console's static menu tree and the per-session
// navigation state built on top of it.
package nav

import (
	"errors"
	"sync"
)

// ErrUnknownItem is returned when an identifier is not part of the menu.
var ErrUnknownItem = errors.New("nav: unknown menu item")

// Item is one entry of the menu tree. Items with children are submenu
// parents and never become active.
type Item struct {
	ID       string
	Label    string
	Path     string
	Children []Item
}

// Parent reports whether the item opens a submenu.
func (i Item) Parent() bool { return len(i.Children) > 0 }

// Initial is the section active after sign-in and after Reset.
const Initial = "dashboard"

// Menu is the fixed menu tree.
var Menu = []Item{
	{ID: "dashboard", Label: "Dashboard", Path: "/"},
	{ID: "access", Label: "Users", Children: []Item{
		{ID: "users", Label: "Users", Path: "/users"},
		{ID: "roles", Label: "Roles", Path: "/roles"},
		{ID: "permissions", Label: "Permissions", Path: "/permissions"},
	}},
	{ID: "tables", Label: "Tables", Path: "/tables"},
	{ID: "products", Label: "Products", Children: []Item{
		{ID: "products-list", Label: "Products", Path: "/products"},
		{ID: "categories", Label: "Categories", Path: "/categories"},
	}},
}

var expandedAtStart = []string{"access", "products"}

// Lookup finds an item anywhere in the tree.
func Lookup(id string) (Item, bool) {
	for _, item := range Menu {
		if item.ID == id {
			return item, true
		}
		for _, child := range item.Children {
			if child.ID == id {
				return child, true
			}
		}
	}
	return Item{}, false
}

// Path returns the URL path of a leaf, or "" for parents and unknown ids.
func Path(id string) string {
	item, ok := Lookup(id)
	if !ok {
		return ""
	}
	return item.Path
}

// Shell tracks the active leaf, the expanded submenus and whether the
// navigation overlay is open on narrow viewports.
type Shell struct {
	mu       sync.Mutex
	active   string
	expanded map[string]bool
	overlay  bool
}

// NewShell returns a shell in its initial state.
func NewShell() *Shell {
	s := &Shell{}
	s.reset()
	return s
}

// Select applies a menu click. Parents toggle their expansion and leave
// the active view alone; leaves become active and close the overlay.
func (s *Shell) Select(id string) error {
	item, ok := Lookup(id)
	if !ok {
		return ErrUnknownItem
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.Parent() {
		s.expanded[id] = !s.expanded[id]
		return nil
	}
	s.active = id
	s.overlay = false
	return nil
}

// ToggleOverlay opens or closes the navigation overlay.
func (s *Shell) ToggleOverlay() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlay = !s.overlay
}

// Reset restores the initial state.
func (s *Shell) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Shell) reset() {
	s.active = Initial
	s.overlay = false
	s.expanded = make(map[string]bool, len(expandedAtStart))
	for _, id := range expandedAtStart {
		s.expanded[id] = true
	}
}

// Active returns the active leaf.
func (s *Shell) Active() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Expanded reports whether a submenu parent is open.
func (s *Shell) Expanded(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expanded[id]
}

// Overlay reports whether the navigation overlay is open.
func (s *Shell) Overlay() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlay
}
