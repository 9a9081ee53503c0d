package users

import (
	"encoding/json"

	"github.com/odyssey-erp/odyssey-pos/internal/resource"
)

// User is a staff account as served by /gestion/usuarios.
type User struct {
	ID        resource.ID   `json:"id"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	IsActive  bool          `json:"isActive"`
	RoleIDs   resource.Refs `json:"roleIds"`
}

// UnmarshalJSON also accepts the embedded "roles" form returned by some
// backend versions.
func (u *User) UnmarshalJSON(b []byte) error {
	type plain User
	var wire struct {
		plain
		Roles resource.Refs `json:"roles"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	*u = User(wire.plain)
	if len(u.RoleIDs) == 0 && len(wire.Roles) > 0 {
		u.RoleIDs = wire.Roles
	}
	return nil
}

// FullName joins first and last name.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Draft is the editable form of a User.
type Draft struct {
	Username  string   `form:"username" label:"Username" validate:"required"`
	Email     string   `form:"email" label:"Email" validate:"required"`
	FirstName string   `form:"firstName" label:"First name" validate:"required"`
	LastName  string   `form:"lastName" label:"Last name" validate:"required"`
	Password  string   `form:"password" label:"Password" validate:"required"`
	IsActive  bool     `form:"isActive"`
	RoleIDs   []string `form:"roleIds"`
}
