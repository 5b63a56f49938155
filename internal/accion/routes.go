package accion

import (
	"github.com/go-chi/chi/v5"

	"github.com/regutech/plataforma/internal/http/middleware"
)

// Mount registra la ruta de planes de acción bajo el router autenticado.
func Mount(r chi.Router, h *Handler) {
	r.Route("/planes", func(r chi.Router) {
		r.With(middleware.RequireAdministrador).Post("/", h.handleCreate)
	})
}
