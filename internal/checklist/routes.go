package checklist

import (
	"github.com/go-chi/chi/v5"
)

// Mount registra las rutas de autoevaluación bajo el router autenticado.
// La ruta estática /status va antes que el comodín de plantilla.
func Mount(r chi.Router, h *Handler) {
	r.Route("/checklists", func(r chi.Router) {
		r.Get("/", h.handleListPendientes)
		r.Get("/status", h.handleStatus)
		r.Get("/{id}", h.handleGet)
		r.Post("/{id}/responder", h.handleResponder)
	})
}

// MountBackoffice registra la gestión de plantillas. El caller aplica el
// guard de SuperAdmin sobre todo el grupo.
func MountBackoffice(r chi.Router, h *Handler) {
	r.Get("/checklists", h.handleBackofficeList)
	r.Post("/checklists", h.handleBackofficeCreate)
	r.Put("/checklists/{id}", h.handleBackofficeUpdate)
	r.Post("/checklists/{id}/preguntas", h.handleBackofficeCreatePregunta)
	r.Delete("/preguntas/{id}", h.handleBackofficeDeletePregunta)
}
