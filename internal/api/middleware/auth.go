package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/weatherupdate/weatherupdate/internal/session"
)

type contextKey string

const RoleKey contextKey = "sessionRole"

// Auth gates a route group behind a valid session cookie. A missing,
// malformed, or expired token yields the same 401 body: the caller learns
// nothing about which check failed.
func Auth(codec *session.Codec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := session.ReadCookie(r)
			if !ok {
				unauthorized(w)
				return
			}

			claims, ok := codec.Verify(token)
			if !ok {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), RoleKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetRole returns the role of the verified session, if any.
func GetRole(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
}
