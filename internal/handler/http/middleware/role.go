package middleware

import (
	"net/http"

	"github.com/andeanwork/attendance-backend-go/internal/domain/auth"
	"github.com/andeanwork/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func roleFromClaims(r *http.Request) (auth.Role, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return "", false
	}
	return auth.Role(roleStr), true
}

// RequireHR allows HR and management roles.
func RequireHR(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromClaims(r)
		if !ok || (role != auth.RoleHR && role != auth.RoleManagement) {
			response.HandleError(w, auth.ErrHRAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireManagement allows the management role only.
func RequireManagement(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromClaims(r)
		if !ok || role != auth.RoleManagement {
			response.HandleError(w, auth.ErrManagementAccess)
			return
		}

		next.ServeHTTP(w, r)
	})
}
