package politica

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/regutech/plataforma/internal/http/middleware"
	"github.com/regutech/plataforma/internal/repo"
)

// Handler expone las rutas de políticas y las de backoffice.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) handleListPendientes(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Acceso no autorizado. Se requiere un token.")
		return
	}

	politicas, err := h.service.ListPendientes(r.Context(), ident.UsuarioID)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	if politicas == nil {
		politicas = []Politica{}
	}
	writeJSON(w, http.StatusOK, politicas)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Acceso no autorizado. Se requiere un token.")
		return
	}

	estados, err := h.service.ListEstados(r.Context(), ident.UsuarioID)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	if estados == nil {
		estados = []EstadoLectura{}
	}
	writeJSON(w, http.StatusOK, estados)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Identificador inválido.")
		return
	}

	politica, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, politica)
}

func (h *Handler) handleConfirm(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Acceso no autorizado. Se requiere un token.")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Identificador inválido.")
		return
	}

	confirmacion, err := h.service.Confirmar(r.Context(), ident.UsuarioID, id)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Lectura confirmada con éxito.",
		"data":    confirmacion,
	})
}

type politicaPayload struct {
	Nombre    string `json:"nombre"`
	Contenido string `json:"contenido"`
	Version   string `json:"version"`
}

func (h *Handler) handleBackofficeList(w http.ResponseWriter, r *http.Request) {
	politicas, err := h.service.ListAll(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	if politicas == nil {
		politicas = []Politica{}
	}
	writeJSON(w, http.StatusOK, politicas)
}

func (h *Handler) handleBackofficeCreate(w http.ResponseWriter, r *http.Request) {
	var payload politicaPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Payload inválido.")
		return
	}

	politica, err := h.service.Crear(r.Context(), payload.Nombre, payload.Contenido, payload.Version)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, politica)
}

func (h *Handler) handleBackofficeUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Identificador inválido.")
		return
	}

	var payload politicaPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Payload inválido.")
		return
	}

	politica, err := h.service.Actualizar(r.Context(), id, payload.Nombre, payload.Contenido, payload.Version)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, politica)
}

func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrYaConfirmada), errors.Is(err, ErrDatosInvalidos):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repo.ErrNotFound):
		writeError(w, http.StatusNotFound, "Política no encontrada.")
	default:
		log.Error().Err(err).Msg("politica handler error")
		writeError(w, http.StatusInternalServerError, "Error interno del servidor.")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
