package accion

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/regutech/plataforma/internal/http/middleware"
)

// Handler expone la ruta de planes de acción.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Acceso no autorizado. Se requiere un token.")
		return
	}

	var payload struct {
		HallazgoID           *uuid.UUID `json:"id_hallazgo"`
		AreaAfectada         string     `json:"area_afectada"`
		AccionPropuesta      string     `json:"accion_propuesta"`
		ResponsableAsignado  string     `json:"responsable_asignado"`
		FechaLimite          string     `json:"fecha_limite"`
		DescripcionDetallada string     `json:"descripcion_detallada"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Payload inválido.")
		return
	}

	fecha, err := parseFecha(payload.FechaLimite)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Por favor complete todos los campos obligatorios.")
		return
	}

	plan, err := h.service.Crear(r.Context(), ident, payload.HallazgoID, payload.AreaAfectada, payload.AccionPropuesta, payload.ResponsableAsignado, fecha, payload.DescripcionDetallada)
	if err != nil {
		if errors.Is(err, ErrDatosInvalidos) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Msg("accion handler error")
		writeError(w, http.StatusInternalServerError, "Error interno del servidor.")
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

func parseFecha(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
