package users

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/odyssey-erp/odyssey-pos/internal/resource"
)

// Bind reads a posted user form. The password is taken verbatim.
func Bind(form url.Values) Draft {
	return Draft{
		Username:  resource.FormValue(form, "username"),
		Email:     resource.FormValue(form, "email"),
		FirstName: resource.FormValue(form, "firstName"),
		LastName:  resource.FormValue(form, "lastName"),
		Password:  form.Get("password"),
		IsActive:  resource.FormBool(form, "isActive"),
		RoleIDs:   resource.FormList(form, "roleIds"),
	}
}

// Row is a user prepared for the list screen.
type Row struct {
	User
	Initials string
	Roles    []string
}

// Rows resolves role names for every user. Roles missing from roleNames
// are left out.
func Rows(items []User, roleNames map[string]string) []Row {
	rows := make([]Row, 0, len(items))
	for _, u := range items {
		rows = append(rows, Row{
			User:     u,
			Initials: initials(u),
			Roles:    u.RoleIDs.Resolve(roleNames),
		})
	}
	return rows
}

func initials(u User) string {
	var b strings.Builder
	for _, part := range []string{u.FirstName, u.LastName} {
		if r, _ := utf8.DecodeRuneInString(part); r != utf8.RuneError {
			b.WriteString(strings.ToUpper(string(r)))
		}
	}
	if b.Len() == 0 {
		if r, _ := utf8.DecodeRuneInString(u.Username); r != utf8.RuneError {
			b.WriteString(strings.ToUpper(string(r)))
		}
	}
	return b.String()
}
