package auditoria

import (
	"github.com/go-chi/chi/v5"

	"github.com/regutech/plataforma/internal/http/middleware"
)

// Mount registra las rutas de auditorías bajo el router autenticado.
// La ruta estática de hallazgos va antes que el comodín de plan.
func Mount(r chi.Router, h *Handler) {
	r.Route("/auditorias", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.With(middleware.RequireAdministrador).Post("/", h.handleCreate)
		r.Get("/hallazgos/{id}", h.handleGetHallazgo)
		r.Get("/{id}", h.handleGet)
		r.With(middleware.RequireAdministrador).Post("/{id}/hallazgos", h.handleCreateHallazgo)
	})
}
