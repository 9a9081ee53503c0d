package products

import (
	"net/url"

	"github.com/odyssey-erp/odyssey-pos/internal/resource"
)

// Uncategorized labels products without a known category.
const Uncategorized = "Uncategorized"

// Bind reads a posted product form.
func Bind(form url.Values) Draft {
	return Draft{
		Name:        resource.FormValue(form, "name"),
		Price:       resource.FormValue(form, "price"),
		Stock:       resource.FormValue(form, "stock"),
		Description: resource.FormValue(form, "description"),
		CategoryID:  resource.FormValue(form, "categoryId"),
	}
}

// Group is the list of products shown under one category heading.
type Group struct {
	Category string
	Products []Product
}

// Groups buckets products by category name, in order of first appearance.
// Products whose category is unset or unknown go under Uncategorized,
// which is always listed last.
func Groups(items []Product, categoryNames map[string]string) []Group {
	var (
		groups []Group
		rest   []Product
	)
	index := make(map[string]int)
	for _, p := range items {
		name, ok := categoryNames[p.CategoryID.String()]
		if !ok || p.CategoryID == "" {
			rest = append(rest, p)
			continue
		}
		i, seen := index[name]
		if !seen {
			i = len(groups)
			index[name] = i
			groups = append(groups, Group{Category: name})
		}
		groups[i].Products = append(groups[i].Products, p)
	}
	if len(rest) > 0 {
		groups = append(groups, Group{Category: Uncategorized, Products: rest})
	}
	return groups
}
