package categories

import "github.com/odyssey-erp/odyssey-pos/internal/resource"

func encode(d Draft) (resource.Payload, error) {
	return resource.Payload{
		"name":        d.Name,
		"description": d.Description,
	}, nil
}
