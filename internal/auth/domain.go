package auth

import (
	"context"
	"errors"
)

// ErrMissingCredentials is returned when the identifier or password is blank.
var ErrMissingCredentials = errors.New("auth: identifier and password are required")

// Credentials is what the operator typed into the sign-in form.
type Credentials struct {
	Identifier string
	Password   string
}

// Principal is the signed-in operator.
type Principal struct {
	ID   string
	Name string
}

// Authenticator decides whether a credential pair may enter the console.
type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials) (Principal, error)
}
