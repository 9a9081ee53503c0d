package categories

import "github.com/odyssey-erp/odyssey-pos/internal/resource"

// Category groups products on the menu.
type Category struct {
	ID          resource.ID `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
}

// Draft is the editable form of a Category.
type Draft struct {
	Name        string `form:"name" label:"Name" validate:"required"`
	Description string `form:"description"`
}
