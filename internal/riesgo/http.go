package riesgo

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

// Handler expone las rutas del registro de riesgos.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type riesgoPayload struct {
	Descripcion  string `json:"descripcion"`
	Tipo         string `json:"tipo"`
	Probabilidad string `json:"probabilidad"`
	Impacto      string `json:"impacto"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Acceso no autorizado. Se requiere un token.")
		return
	}

	riesgos, err := h.service.List(r.Context(), ident)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	if riesgos == nil {
		riesgos = []RiesgoOportunidad{}
	}
	writeJSON(w, http.StatusOK, riesgos)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
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

	riesgo, err := h.service.Get(r.Context(), ident, id)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, riesgo)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Acceso no autorizado. Se requiere un token.")
		return
	}

	var payload riesgoPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Payload inválido.")
		return
	}

	riesgo, err := h.service.Crear(r.Context(), ident, payload.Descripcion, payload.Tipo, payload.Probabilidad, payload.Impacto)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, riesgo)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
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

	var payload riesgoPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Payload inválido.")
		return
	}

	riesgo, err := h.service.Actualizar(r.Context(), ident, id, payload.Descripcion, payload.Tipo, payload.Probabilidad, payload.Impacto)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, riesgo)
}

func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrAccesoDenegado):
		writeError(w, http.StatusForbidden, "Acceso denegado.")
	case errors.Is(err, ErrDatosInvalidos):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repo.ErrNotFound):
		writeError(w, http.StatusNotFound, "Riesgo no encontrado o no tiene permiso para verlo.")
	default:
		log.Error().Err(err).Msg("riesgo handler error")
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
