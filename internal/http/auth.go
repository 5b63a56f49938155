package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/regutech/plataforma/internal/cliente"
	"github.com/regutech/plataforma/internal/http/middleware"
	"github.com/regutech/plataforma/internal/repo"
	"github.com/regutech/plataforma/internal/service"
)

// AuthHandler cubre autenticación, perfil y reseteo de contraseña.
type AuthHandler struct {
	auth     *service.AuthService
	clientes *cliente.Service
}

func NewAuthHandler(auth *service.AuthService, clientes *cliente.Service) *AuthHandler {
	return &AuthHandler{auth: auth, clientes: clientes}
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "Payload inválido.")
		return
	}

	result, err := h.auth.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCredencialesInvalidas):
			WriteError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, service.ErrCuentaInactiva):
			WriteError(w, http.StatusForbidden, err.Error())
		default:
			log.Error().Err(err).Msg("login error")
			WriteError(w, http.StatusInternalServerError, "Error interno del servidor.")
		}
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Inicio de sesión exitoso.",
		"token":   result.Token,
		"rol":     result.Rol,
	})
}

func (h *AuthHandler) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "Payload inválido.")
		return
	}

	if err := h.auth.ForgotPassword(r.Context(), payload.Email); err != nil {
		log.Error().Err(err).Msg("forgot-password error")
		WriteError(w, http.StatusInternalServerError, "Error interno del servidor.")
		return
	}

	// Siempre el mismo cuerpo, exista o no la cuenta.
	WriteJSON(w, http.StatusOK, map[string]string{"message": service.MensajeForgotPassword})
}

func (h *AuthHandler) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "Payload inválido.")
		return
	}
	if payload.Token == "" || payload.NewPassword == "" {
		WriteError(w, http.StatusBadRequest, "Faltan datos.")
		return
	}

	if err := h.auth.ResetPassword(r.Context(), payload.Token, payload.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrTokenReset):
			WriteError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, repo.ErrNotFound):
			WriteError(w, http.StatusUnauthorized, service.ErrTokenReset.Error())
		default:
			log.Error().Err(err).Msg("reset-password error")
			WriteError(w, http.StatusInternalServerError, "Error interno del servidor.")
		}
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "Contraseña actualizada con éxito. Ya puedes iniciar sesión."})
}

func (h *AuthHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Acceso no autorizado. Se requiere un token.")
		return
	}

	usuario, err := h.auth.GetPerfil(r.Context(), ident.UsuarioID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Usuario no encontrado.")
			return
		}
		log.Error().Err(err).Msg("me error")
		WriteError(w, http.StatusInternalServerError, "Error interno del servidor.")
		return
	}

	WriteJSON(w, http.StatusOK, perfilDe(usuario))
}

func (h *AuthHandler) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Acceso no autorizado. Se requiere un token.")
		return
	}

	var payload struct {
		NombreCompleto string `json:"nombre_completo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "Payload inválido.")
		return
	}
	if strings.TrimSpace(payload.NombreCompleto) == "" {
		WriteError(w, http.StatusBadRequest, "El nombre es obligatorio.")
		return
	}

	usuario, err := h.auth.UpdateNombre(r.Context(), ident.UsuarioID, payload.NombreCompleto)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Usuario no encontrado.")
			return
		}
		log.Error().Err(err).Msg("update me error")
		WriteError(w, http.StatusInternalServerError, "Error interno del servidor.")
		return
	}

	WriteJSON(w, http.StatusOK, perfilDe(usuario))
}

func (h *AuthHandler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Acceso no autorizado. Se requiere un token.")
		return
	}

	var payload struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "Payload inválido.")
		return
	}
	if payload.OldPassword == "" || payload.NewPassword == "" {
		WriteError(w, http.StatusBadRequest, "Todos los campos son obligatorios.")
		return
	}

	if err := h.auth.ChangePassword(r.Context(), ident.UsuarioID, payload.OldPassword, payload.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordActual):
			WriteError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, repo.ErrNotFound):
			WriteError(w, http.StatusNotFound, "Usuario no encontrado.")
		default:
			log.Error().Err(err).Msg("change-password error")
			WriteError(w, http.StatusInternalServerError, "Error interno del servidor.")
		}
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "Contraseña actualizada con éxito."})
}

func (h *AuthHandler) handleCreateAdminUser(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ClientName string `json:"clientName"`
		UserName   string `json:"userName"`
		Email      string `json:"email"`
		Password   string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "Payload inválido.")
		return
	}

	nuevoCliente, usuario, err := h.clientes.Bootstrap(r.Context(), payload.ClientName, payload.UserName, payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, cliente.ErrDatosInvalidos) {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Msg("create-admin-user error")
		WriteError(w, http.StatusInternalServerError, "Error interno del servidor.")
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Cliente y usuario administrador creados con éxito.",
		"cliente": nuevoCliente,
		"usuario": usuario,
	})
}

// perfilDe proyecta el perfil público de una cuenta.
func perfilDe(u repo.Usuario) map[string]any {
	return map[string]any{
		"id_usuario":      u.ID,
		"nombre_completo": u.NombreCompleto,
		"email":           u.Email,
		"rol":             u.Rol,
	}
}
