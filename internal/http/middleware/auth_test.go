package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/regutech/plataforma/internal/auth"
)

func newTokens() *auth.TokenManager {
	return auth.NewTokenManager("clave-de-prueba-con-largo-suficiente!", time.Hour, 15*time.Minute)
}

func protectedHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetIdentity(r.Context()); !ok {
			t.Error("la identidad debía estar en el contexto")
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	tokens := newTokens()
	handler := Auth(tokens)(protectedHandler(t))

	t.Run("sin token responde 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, esperaba 401", rec.Code)
		}
		var body map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decodificando: %v", err)
		}
		if body["message"] == "" {
			t.Fatal("esperaba mensaje de error")
		}
	})

	t.Run("token inválido responde 403", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer no-es-un-jwt")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, esperaba 403", rec.Code)
		}
	})

	t.Run("token de reseteo no sirve como sesión", func(t *testing.T) {
		reset, _, err := tokens.GenerarReset(uuid.New())
		if err != nil {
			t.Fatalf("generando reset: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+reset)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, esperaba 403", rec.Code)
		}
	})

	t.Run("token válido pasa", func(t *testing.T) {
		clienteID := uuid.New()
		token, err := tokens.GenerarSesion(uuid.New(), auth.RolAdministrador, &clienteID)
		if err != nil {
			t.Fatalf("generando sesión: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, esperaba 200", rec.Code)
		}
	})
}

func TestRequireRol(t *testing.T) {
	tokens := newTokens()
	clienteID := uuid.New()

	superadmin, _ := tokens.GenerarSesion(uuid.New(), auth.RolSuperAdmin, nil)
	colaborador, _ := tokens.GenerarSesion(uuid.New(), auth.RolColaborador, &clienteID)

	handler := Auth(tokens)(RequireSuperAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	casos := []struct {
		nombre string
		token  string
		status int
	}{
		{"superadmin pasa", superadmin, http.StatusOK},
		{"colaborador recibe 403", colaborador, http.StatusForbidden},
	}

	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+tc.token)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.status {
				t.Fatalf("status = %d, esperaba %d", rec.Code, tc.status)
			}
		})
	}
}
