package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/odyssey-erp/odyssey-pos/internal/shared"
)

// DefaultDelay is the artificial wait of the Placeholder authenticator.
const DefaultDelay = 500 * time.Millisecond

// Placeholder admits any non-blank credential pair after a fixed delay.
// It performs no verification and stands in until a real identity
// backend exists.
type Placeholder struct {
	Delay time.Duration
}

// NewPlaceholder constructs a Placeholder; a negative delay selects DefaultDelay.
func NewPlaceholder(delay time.Duration) *Placeholder {
	if delay < 0 {
		delay = DefaultDelay
	}
	return &Placeholder{Delay: delay}
}

// Authenticate implements Authenticator.
func (p *Placeholder) Authenticate(ctx context.Context, creds Credentials) (Principal, error) {
	identifier := strings.TrimSpace(creds.Identifier)
	if identifier == "" || creds.Password == "" {
		return Principal{}, ErrMissingCredentials
	}
	if p.Delay > 0 {
		timer := time.NewTimer(p.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Principal{}, ctx.Err()
		case <-timer.C:
		}
	}
	return Principal{ID: identifier, Name: displayName(identifier)}, nil
}

// Static admits a single operator account whose password hash comes from
// configuration.
type Static struct {
	email string
	hash  []byte
}

// NewStatic constructs a Static authenticator.
func NewStatic(email, passwordHash string) *Static {
	return &Static{email: strings.TrimSpace(email), hash: []byte(passwordHash)}
}

// Authenticate implements Authenticator.
func (s *Static) Authenticate(_ context.Context, creds Credentials) (Principal, error) {
	identifier := strings.TrimSpace(creds.Identifier)
	if identifier == "" || creds.Password == "" {
		return Principal{}, ErrMissingCredentials
	}
	if s.email == "" || !strings.EqualFold(identifier, s.email) {
		return Principal{}, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(creds.Password)); err != nil {
		return Principal{}, shared.ErrInvalidCredentials
	}
	return Principal{ID: s.email, Name: displayName(s.email)}, nil
}

// displayName drops the domain part of an email address.
func displayName(identifier string) string {
	if at := strings.IndexByte(identifier, '@'); at > 0 {
		return identifier[:at]
	}
	return identifier
}

var (
	_ Authenticator = (*Placeholder)(nil)
	_ Authenticator = (*Static)(nil)
)
