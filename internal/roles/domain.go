package roles

import (
	"encoding/json"

	"github.com/odyssey-erp/odyssey-pos/internal/resource"
)

// Role groups permissions under a name.
type Role struct {
	ID            resource.ID   `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	PermissionIDs resource.Refs `json:"permissionIds"`
}

// UnmarshalJSON also accepts embedded "permissions" objects.
func (r *Role) UnmarshalJSON(b []byte) error {
	type plain Role
	var wire struct {
		plain
		Permissions resource.Refs `json:"permissions"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	*r = Role(wire.plain)
	if len(r.PermissionIDs) == 0 && len(wire.Permissions) > 0 {
		r.PermissionIDs = wire.Permissions
	}
	return nil
}

// Draft is the editable form of a Role.
type Draft struct {
	Name          string   `form:"name" label:"Name" validate:"required"`
	Description   string   `form:"description"`
	PermissionIDs []string `form:"permissionIds"`
}
