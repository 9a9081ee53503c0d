package products

import (
	"encoding/json"

	"github.com/odyssey-erp/odyssey-pos/internal/resource"
)

// Product is a sellable menu item.
type Product struct {
	ID          resource.ID `json:"id"`
	Name        string      `json:"name"`
	Price       float64     `json:"price"`
	Stock       int         `json:"stock"`
	Description string      `json:"description"`
	CategoryID  resource.ID `json:"categoryId"`
}

// UnmarshalJSON also accepts an embedded "category" object and prices
// serialized as decimal strings.
func (p *Product) UnmarshalJSON(b []byte) error {
	type plain Product
	var wire struct {
		plain
		Price    json.Number `json:"price"`
		Category *struct {
			ID resource.ID `json:"id"`
		} `json:"category"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	*p = Product(wire.plain)
	if wire.Price != "" {
		price, err := wire.Price.Float64()
		if err != nil {
			return err
		}
		p.Price = price
	}
	if p.CategoryID == "" && wire.Category != nil {
		p.CategoryID = wire.Category.ID
	}
	return nil
}

// Draft is the editable form of a Product. Numbers are kept as typed by
// the operator and coerced on submission.
type Draft struct {
	Name        string `form:"name" label:"Name" validate:"required"`
	Price       string `form:"price" label:"Price" validate:"required"`
	Stock       string `form:"stock" label:"Stock" validate:"required"`
	Description string `form:"description"`
	CategoryID  string `form:"categoryId"`
}
