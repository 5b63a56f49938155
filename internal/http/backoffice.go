package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/regutech/plataforma/internal/auth"
	"github.com/regutech/plataforma/internal/cliente"
	"github.com/regutech/plataforma/internal/http/middleware"
	"github.com/regutech/plataforma/internal/repo"
	"github.com/regutech/plataforma/internal/service"
)

// BackofficeHandler agrupa la operación de plataforma: clientes, cuentas
// y estadísticas. Todo el grupo queda detrás del guard de SuperAdmin.
type BackofficeHandler struct {
	clientes *cliente.Service
	usuarios *service.UsuarioService
}

func NewBackofficeHandler(clientes *cliente.Service, usuarios *service.UsuarioService) *BackofficeHandler {
	return &BackofficeHandler{clientes: clientes, usuarios: usuarios}
}

// RegisterRoutes registra clientes, cuentas y stats en el grupo
// /backoffice ya protegido.
func (h *BackofficeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/clientes", h.handleListClientes)
	r.Get("/clientes/{id}", h.handleGetCliente)
	r.Get("/clientes/{id}/usuarios", h.handleListUsuariosDeCliente)
	r.Get("/usuarios", h.handleListUsuarios)
	r.Get("/usuarios/{id}", h.handleGetUsuario)
	r.Put("/usuarios/{id}", h.handleUpdateUsuario)
	r.Delete("/usuarios/{id}", h.handleDeleteUsuario)
	r.Get("/stats", h.handleStats)
}

func (h *BackofficeHandler) handleListClientes(w http.ResponseWriter, r *http.Request) {
	clientes, err := h.clientes.List(r.Context())
	if err != nil {
		h.internalError(w, err, "listando clientes")
		return
	}
	if clientes == nil {
		clientes = []repo.Cliente{}
	}
	WriteJSON(w, http.StatusOK, clientes)
}

func (h *BackofficeHandler) handleGetCliente(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Identificador inválido.")
		return
	}

	c, err := h.clientes.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Cliente no encontrado.")
			return
		}
		h.internalError(w, err, "consultando cliente")
		return
	}
	WriteJSON(w, http.StatusOK, c)
}

func (h *BackofficeHandler) handleListUsuariosDeCliente(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Identificador inválido.")
		return
	}

	usuarios, err := h.usuarios.ListByCliente(r.Context(), id)
	if err != nil {
		h.internalError(w, err, "listando usuarios del cliente")
		return
	}
	if usuarios == nil {
		usuarios = []repo.Usuario{}
	}
	WriteJSON(w, http.StatusOK, usuarios)
}

func (h *BackofficeHandler) handleListUsuarios(w http.ResponseWriter, r *http.Request) {
	usuarios, err := h.usuarios.List(r.Context())
	if err != nil {
		h.internalError(w, err, "listando usuarios")
		return
	}
	if usuarios == nil {
		usuarios = []repo.UsuarioConCliente{}
	}
	WriteJSON(w, http.StatusOK, usuarios)
}

func (h *BackofficeHandler) handleGetUsuario(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Identificador inválido.")
		return
	}

	usuario, err := h.usuarios.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Usuario no encontrado.")
			return
		}
		h.internalError(w, err, "consultando usuario")
		return
	}
	WriteJSON(w, http.StatusOK, usuario)
}

func (h *BackofficeHandler) handleUpdateUsuario(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Identificador inválido.")
		return
	}

	var payload struct {
		NombreCompleto string `json:"nombre_completo"`
		Rol            string `json:"rol"`
		Activo         bool   `json:"activo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "Payload inválido.")
		return
	}

	usuario, err := h.usuarios.Update(r.Context(), id, payload.NombreCompleto, auth.Rol(payload.Rol), payload.Activo)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRolInvalido):
			WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repo.ErrNotFound):
			WriteError(w, http.StatusNotFound, "Usuario no encontrado.")
		default:
			h.internalError(w, err, "actualizando usuario")
		}
		return
	}
	WriteJSON(w, http.StatusOK, usuario)
}

func (h *BackofficeHandler) handleDeleteUsuario(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Acceso no autorizado. Se requiere un token.")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Identificador inválido.")
		return
	}

	if err := h.usuarios.Delete(r.Context(), ident.UsuarioID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrAutoEliminacion):
			WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repo.ErrNotFound):
			WriteError(w, http.StatusNotFound, "Usuario no encontrado.")
		default:
			h.internalError(w, err, "eliminando usuario")
		}
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Usuario eliminado."})
}

func (h *BackofficeHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.clientes.Stats(r.Context())
	if err != nil {
		h.internalError(w, err, "consultando stats")
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

func (h *BackofficeHandler) internalError(w http.ResponseWriter, err error, msg string) {
	log.Error().Err(err).Msg("backoffice: " + msg)
	WriteError(w, http.StatusInternalServerError, "Error interno del servidor.")
}
