package categories

import (
	"log/slog"

	"github.com/odyssey-erp/odyssey-pos/internal/resource"
)

// Path is the backend collection path.
const Path = "/categorias"

// Controller mirrors the categories collection.
type Controller = resource.Controller[Category, Draft]

// Definition describes categories to the generic controller. Products
// reference categories, so a refused delete is reported as a conflict.
func Definition() resource.Definition[Category, Draft] {
	return resource.Definition[Category, Draft]{
		Name:       "categories",
		Noun:       "category",
		Plural:     "categories",
		Path:       Path,
		Dependents: "products",
		ID:         func(c Category) string { return c.ID.String() },
		Label:      func(c Category) string { return c.Name },
		Blank:      func() Draft { return Draft{} },
		Edit:       func(c Category) Draft { return Draft{Name: c.Name, Description: c.Description} },
		Encode:     encode,
	}
}

// NewController builds the categories controller.
func NewController(client resource.Doer, logger *slog.Logger) *Controller {
	return resource.New(Definition(), client, logger)
}
