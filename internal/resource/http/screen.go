// Package http serves the list, form and delete-confirmation screens of
// one resource controller.
package http

import (
	"net/http"
	"net/url"

	"github.com/odyssey-erp/odyssey-pos/internal/nav"
	"github.com/odyssey-erp/odyssey-pos/internal/resource"
)

// Scope is the per-session environment a screen request runs in.
type Scope[E any, D any] struct {
	Controller *resource.Controller[E, D]
	Nav        nav.View
	// Failure is the first load failure among the section's controllers.
	Failure string
	// Rows turns mirrored items into list rows; nil lists the items as-is.
	Rows func(items []E) any
	// Choices supplies options for reference fields on the form.
	Choices func() any
}

// Resolver activates the screen's section for the request's session.
// Load failures are reported through the scope, not the error.
type Resolver[E any, D any] func(r *http.Request, refresh bool) (Scope[E, D], error)

// Screen configures a Handler.
type Screen[E any, D any] struct {
	// Section is the menu leaf, e.g. "products-list".
	Section string
	Title   string
	// Base is the URL prefix the routes are mounted on, e.g. "/products".
	Base string
	// List and Form name the page templates.
	List string
	Form string
	Bind    func(url.Values) D
	Resolve Resolver[E, D]
}

// ListPage is the data passed to list templates.
type ListPage struct {
	Section  string
	Title    string
	Base     string
	Status   resource.Status
	Message  string
	Failure  string
	Rows     any
	Count    int
	Loading  bool
	Mutating bool
}

// FormPage is the data passed to form templates.
type FormPage[D any] struct {
	Section string
	Title   string
	Base    string
	Edit    bool
	ID      string
	Action  string
	Draft   D
	Errors  map[string]string
	Notice  string
	Choices any
}

// ConfirmPage is the data passed to the delete confirmation template.
type ConfirmPage struct {
	Section string
	Title   string
	Base    string
	ID      string
	Prompt  string
	Action  string
}
