package permissions

import "github.com/odyssey-erp/odyssey-pos/internal/resource"

// Permission is one atomic capability, e.g. "create" on "orders".
type Permission struct {
	ID          resource.ID `json:"id"`
	Name        string      `json:"name"`
	Slug        string      `json:"slug"`
	Action      string      `json:"action"`
	Resource    string      `json:"resource"`
	Description string      `json:"description"`
}

// Draft is the editable form of a Permission.
type Draft struct {
	Name        string `form:"name" label:"Name" validate:"required"`
	Slug        string `form:"slug" label:"Slug" validate:"required"`
	Action      string `form:"action" label:"Action" validate:"required"`
	Resource    string `form:"resource" label:"Resource" validate:"required"`
	Description string `form:"description"`
}
