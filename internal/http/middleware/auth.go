package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/regutech/plataforma/internal/auth"
)

type contextKey string

const (
	// ContextKeyIdentity guarda la identidad resuelta del token.
	ContextKeyIdentity contextKey = "identity"
)

// Auth valida el token de sesión e inyecta la identidad en el contexto.
// Sin token responde 401; con token inválido o expirado responde 403.
func Auth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				writeError(w, http.StatusUnauthorized, "Acceso no autorizado. Se requiere un token.")
				return
			}

			ident, err := tokens.ParsearSesion(parts[1])
			if err != nil {
				writeError(w, http.StatusForbidden, "Token inválido o expirado.")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyIdentity, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity recupera la identidad del contexto.
func GetIdentity(ctx context.Context) (auth.Identity, bool) {
	ident, ok := ctx.Value(ContextKeyIdentity).(auth.Identity)
	return ident, ok
}

// RequireAdministrador exige rol Administrador (admin de cliente).
func RequireAdministrador(next http.Handler) http.Handler {
	return requireRol(auth.RolAdministrador, "Acceso denegado. Se requiere rol de Administrador.", next)
}

// RequireSuperAdmin exige rol SuperAdmin (operador de plataforma).
func RequireSuperAdmin(next http.Handler) http.Handler {
	return requireRol(auth.RolSuperAdmin, "Acceso denegado. Se requiere rol de SuperAdmin.", next)
}

// requireRol es un predicado puro sobre la identidad ya resuelta:
// nunca consulta la capa de datos.
func requireRol(rol auth.Rol, mensaje string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := GetIdentity(r.Context())
		if !ok || ident.Rol != rol {
			writeError(w, http.StatusForbidden, mensaje)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
