package politica

import (
	"github.com/go-chi/chi/v5"
)

// Mount registra las rutas de políticas bajo el router autenticado.
// La ruta estática /status va antes que el comodín.
func Mount(r chi.Router, h *Handler) {
	r.Route("/policies", func(r chi.Router) {
		r.Get("/", h.handleListPendientes)
		r.Get("/status", h.handleStatus)
		r.Get("/{id}", h.handleGet)
		r.Post("/{id}/confirm", h.handleConfirm)
	})
}

// MountBackoffice registra la gestión de políticas. El caller aplica el
// guard de SuperAdmin sobre todo el grupo.
func MountBackoffice(r chi.Router, h *Handler) {
	r.Get("/policies", h.handleBackofficeList)
	r.Post("/policies", h.handleBackofficeCreate)
	r.Put("/policies/{id}", h.handleBackofficeUpdate)
}
