package products

import (
	"log/slog"
	"strconv"

	"github.com/odyssey-erp/odyssey-pos/internal/resource"
)

// Path is the backend collection path.
const Path = "/productos"

// Controller mirrors the products collection.
type Controller = resource.Controller[Product, Draft]

// Definition describes products to the generic controller.
func Definition() resource.Definition[Product, Draft] {
	return resource.Definition[Product, Draft]{
		Name:   "products",
		Noun:   "product",
		Plural: "products",
		Path:   Path,
		ID:     func(p Product) string { return p.ID.String() },
		Label:  func(p Product) string { return p.Name },
		Blank:  func() Draft { return Draft{} },
		Edit: func(p Product) Draft {
			return Draft{
				Name:        p.Name,
				Price:       formatPrice(p.Price),
				Stock:       strconv.Itoa(p.Stock),
				Description: p.Description,
				CategoryID:  p.CategoryID.String(),
			}
		},
		Encode: encode,
	}
}

// NewController builds the products controller.
func NewController(client resource.Doer, logger *slog.Logger) *Controller {
	return resource.New(Definition(), client, logger)
}
