package httpx

import (
	"net/http"
	"slices"
)

// RequireAnyRole passes the request through when the verified claims carry
// at least one of the listed roles. Declaring no roles means the route has
// no role requirement and everything passes. Must run after AuthnMiddleware.
func RequireAnyRole(required ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(required) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			have, ok := rolesFromCtx(r.Context())
			if !ok || len(have) == 0 {
				WriteMessage(w, http.StatusForbidden, "User has no roles")
				return
			}

			for _, role := range required {
				if slices.Contains(have, role) {
					next.ServeHTTP(w, r)
					return
				}
			}

			WriteMessage(w, http.StatusForbidden, "Insufficient permissions")
		})
	}
}
