package permissions

import (
	"net/url"

	"github.com/odyssey-erp/odyssey-pos/internal/resource"
)

// Bind reads a posted permission form.
func Bind(form url.Values) Draft {
	return Draft{
		Name:        resource.FormValue(form, "name"),
		Slug:        resource.FormValue(form, "slug"),
		Action:      resource.FormValue(form, "action"),
		Resource:    resource.FormValue(form, "resource"),
		Description: resource.FormValue(form, "description"),
	}
}

// Group collects the permissions that act on one resource.
type Group struct {
	Resource    string
	Permissions []Permission
}

// Groups buckets permissions by resource in order of first appearance.
func Groups(items []Permission) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, p := range items {
		key := p.Resource
		if key == "" {
			key = "general"
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Resource: key})
		}
		groups[i].Permissions = append(groups[i].Permissions, p)
	}
	return groups
}
