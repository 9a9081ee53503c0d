package users

import (
	"log/slog"

	"github.com/odyssey-erp/odyssey-pos/internal/resource"
)

// Path is the backend collection path.
const Path = "/usuarios"

// Controller mirrors the users collection.
type Controller = resource.Controller[User, Draft]

// Definition describes users to the generic controller.
func Definition() resource.Definition[User, Draft] {
	return resource.Definition[User, Draft]{
		Name:    "users",
		Noun:    "user",
		Plural:  "users",
		Path:    Path,
		Secrets: []resource.Secret{{Field: "Password", Key: "password"}},
		ID:      func(u User) string { return u.ID.String() },
		Label:   func(u User) string { return u.Username },
		Blank:   func() Draft { return Draft{IsActive: true, RoleIDs: []string{}} },
		Edit: func(u User) Draft {
			return Draft{
				Username:  u.Username,
				Email:     u.Email,
				FirstName: u.FirstName,
				LastName:  u.LastName,
				IsActive:  u.IsActive,
				RoleIDs:   u.RoleIDs.Strings(),
			}
		},
		Encode: encode,
	}
}

// NewController builds the users controller.
func NewController(client resource.Doer, logger *slog.Logger) *Controller {
	return resource.New(Definition(), client, logger)
}

func encode(d Draft) (resource.Payload, error) {
	roleIDs := d.RoleIDs
	if roleIDs == nil {
		roleIDs = []string{}
	}
	return resource.Payload{
		"username":  d.Username,
		"email":     d.Email,
		"firstName": d.FirstName,
		"lastName":  d.LastName,
		"password":  d.Password,
		"isActive":  d.IsActive,
		"roleIds":   roleIDs,
	}, nil
}
