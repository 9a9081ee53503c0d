package categories

import (
	"net/url"

	"github.com/odyssey-erp/odyssey-pos/internal/resource"
)

// Bind reads a posted category form.
func Bind(form url.Values) Draft {
	return Draft{
		Name:        resource.FormValue(form, "name"),
		Description: resource.FormValue(form, "description"),
	}
}
