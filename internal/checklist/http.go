package checklist

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

// Handler expone las rutas de autoevaluación y las de backoffice.
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

	checklists, err := h.service.ListPendientes(r.Context(), ident.UsuarioID)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	if checklists == nil {
		checklists = []Checklist{}
	}
	writeJSON(w, http.StatusOK, checklists)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Acceso no autorizado. Se requiere un token.")
		return
	}

	progresos, err := h.service.ListProgreso(r.Context(), ident.UsuarioID)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	if progresos == nil {
		progresos = []Progreso{}
	}
	writeJSON(w, http.StatusOK, progresos)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Identificador inválido.")
		return
	}

	ch, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ch)
}

func (h *Handler) handleResponder(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Acceso no autorizado. Se requiere un token.")
		return
	}

	checklistID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Identificador inválido.")
		return
	}

	var payload struct {
		Respuestas []RespuestaItem `json:"respuestas"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Formato de respuestas inválido.")
		return
	}

	if err := h.service.Responder(r.Context(), ident.UsuarioID, checklistID, payload.Respuestas); err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Respuestas guardadas con éxito."})
}

type plantillaPayload struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Version     string `json:"version"`
}

func (h *Handler) handleBackofficeList(w http.ResponseWriter, r *http.Request) {
	checklists, err := h.service.ListAll(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	if checklists == nil {
		checklists = []Checklist{}
	}
	writeJSON(w, http.StatusOK, checklists)
}

func (h *Handler) handleBackofficeCreate(w http.ResponseWriter, r *http.Request) {
	var payload plantillaPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Payload inválido.")
		return
	}

	ch, err := h.service.Crear(r.Context(), payload.Nombre, payload.Descripcion, payload.Version)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ch)
}

func (h *Handler) handleBackofficeUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Identificador inválido.")
		return
	}

	var payload plantillaPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Payload inválido.")
		return
	}

	ch, err := h.service.Actualizar(r.Context(), id, payload.Nombre, payload.Descripcion, payload.Version)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ch)
}

func (h *Handler) handleBackofficeCreatePregunta(w http.ResponseWriter, r *http.Request) {
	checklistID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Identificador inválido.")
		return
	}

	var payload struct {
		TextoPregunta string `json:"texto_pregunta"`
		Obligatoria   bool   `json:"obligatoria"`
		Orden         int    `json:"orden"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Payload inválido.")
		return
	}

	pregunta, err := h.service.CrearPregunta(r.Context(), checklistID, payload.TextoPregunta, payload.Obligatoria, payload.Orden)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, pregunta)
}

func (h *Handler) handleBackofficeDeletePregunta(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Identificador inválido.")
		return
	}

	if err := h.service.EliminarPregunta(r.Context(), id); err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Pregunta eliminada."})
}

func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrRespuestasInvalidas), errors.Is(err, ErrDatosInvalidos):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repo.ErrNotFound):
		writeError(w, http.StatusNotFound, "Checklist no encontrado.")
	default:
		log.Error().Err(err).Msg("checklist handler error")
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
