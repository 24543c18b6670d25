// Package rbac provides role-based access control middleware.
package rbac

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/foodshare/pkg/middleware"
	"github.com/shashiranjanraj/foodshare/pkg/response"
)

// HasRole returns middleware that allows access only to users with one of the
// given roles. Requires AuthMiddleware to have already run (role must be in
// context). The denial message names the actor's role and the permitted set.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r)
			if !ok || !allowed[role] {
				response.Error(w, http.StatusForbidden, fmt.Sprintf(
					"Users with role '%s' cannot access this endpoint. Permitted roles: %s.",
					role, strings.Join(roles, ", ")))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Guest returns middleware that blocks authenticated users (useful for login/register).
func Guest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.UserIDFromCtx(r); ok {
			response.Error(w, http.StatusConflict, "Already authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}
