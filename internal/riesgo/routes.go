package riesgo

import (
	"github.com/go-chi/chi/v5"

	"github.com/regutech/plataforma/internal/http/middleware"
)

// Mount registra las rutas de riesgos bajo el router autenticado.
func Mount(r chi.Router, h *Handler) {
	r.Route("/riesgos", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.With(middleware.RequireAdministrador).Post("/", h.handleCreate)
		r.Get("/{id}", h.handleGet)
		r.With(middleware.RequireAdministrador).Put("/{id}", h.handleUpdate)
	})
}
