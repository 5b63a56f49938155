package auditoria

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/regutech/plataforma/internal/http/middleware"
	"github.com/regutech/plataforma/internal/repo"
)

// Handler expone las rutas de auditorías.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Acceso no autorizado. Se requiere un token.")
		return
	}

	planes, err := h.service.List(r.Context(), ident)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	if planes == nil {
		planes = []PlanAuditoria{}
	}
	writeJSON(w, http.StatusOK, planes)
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

	plan, err := h.service.Get(r.Context(), ident, id)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Acceso no autorizado. Se requiere un token.")
		return
	}

	var payload struct {
		FechaPlanificada     string `json:"fecha_planificada"`
		AreaAuditar          string `json:"area_auditar"`
		ResponsableAuditoria string `json:"responsable_auditoria"`
		Objetivo             string `json:"objetivo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Payload inválido.")
		return
	}

	fecha, err := parseFecha(payload.FechaPlanificada)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Fecha planificada inválida.")
		return
	}

	plan, err := h.service.Crear(r.Context(), ident, fecha, payload.AreaAuditar, payload.ResponsableAuditoria, payload.Objetivo)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

func (h *Handler) handleCreateHallazgo(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Acceso no autorizado. Se requiere un token.")
		return
	}

	planID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Identificador inválido.")
		return
	}

	var payload struct {
		Tipo        string `json:"tipo"`
		Descripcion string `json:"descripcion"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Payload inválido.")
		return
	}

	hallazgo, err := h.service.CrearHallazgo(r.Context(), ident, planID, payload.Tipo, payload.Descripcion)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, hallazgo)
}

func (h *Handler) handleGetHallazgo(w http.ResponseWriter, r *http.Request) {
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

	hallazgo, err := h.service.GetHallazgo(r.Context(), ident, id)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hallazgo)
}

// parseFecha acepta fecha simple o timestamp RFC3339.
func parseFecha(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrAccesoDenegado):
		writeError(w, http.StatusForbidden, "Acceso denegado.")
	case errors.Is(err, ErrDatosInvalidos):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repo.ErrNotFound):
		writeError(w, http.StatusNotFound, "Plan de auditoría no encontrado o no tiene permiso para verlo.")
	default:
		log.Error().Err(err).Msg("auditoria handler error")
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
