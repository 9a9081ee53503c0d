package products

import (
	"strconv"

	"github.com/odyssey-erp/odyssey-pos/internal/resource"
)

func encode(d Draft) (resource.Payload, error) {
	var c resource.Coercer
	price := c.Float("Price", d.Price)
	stock := c.Int("Stock", d.Stock)
	if err := c.Err(); err != nil {
		return nil, err
	}
	var category any
	if d.CategoryID != "" {
		category = d.CategoryID
	}
	return resource.Payload{
		"name":        d.Name,
		"price":       price,
		"stock":       stock,
		"description": d.Description,
		"categoryId":  category,
	}, nil
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
