package auth

import (
	"net/http"

	"github.com/odyssey-erp/odyssey-pos/internal/shared"
)

// RequireSession redirects requests without a signed-in operator to the
// sign-in page.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		if !sess.SignedIn() {
			http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
