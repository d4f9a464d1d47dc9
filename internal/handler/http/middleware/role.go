package middleware

import (
	"net/http"

	"github.com/chronohr/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleHR       Role = "hr"
)

func roleFromClaims(r *http.Request) (Role, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return "", false
	}
	return Role(roleStr), true
}

// RequireManager requires manager or HR role
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromClaims(r)
		if !ok || (role != RoleManager && role != RoleHR) {
			response.Forbidden(w, "Manager access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireHR requires HR role
func RequireHR(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromClaims(r)
		if !ok || role != RoleHR {
			response.Forbidden(w, "HR access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
