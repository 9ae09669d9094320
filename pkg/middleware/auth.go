package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vfg2006/ad-manager-api/internal/usecases/authenticating"
)

type contextKey string

const (
	ContextKeyAdmin contextKey = "admin"
)

// AuthMiddleware protege as rotas administrativas (/v1) com JWT.
// As rotas públicas de veiculação (/api) usam chave de API e são
// autenticadas por middleware específico de rota.
func AuthMiddleware(authService authenticating.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, "/v1") ||
				r.URL.Path == "/v1/login" || r.URL.Path == "/v1/register" {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header is required", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				http.Error(w, "Bearer token is required", http.StatusUnauthorized)
				return
			}

			claims, err := authService.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyAdmin, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
