package room

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns room router.
func (h *Handler) Routes(authMiddleware, adminMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// Public catalog
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Get("/{id}/availability", h.Availability)

	// Admin management
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(adminMiddleware)

		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Put("/{id}/availability", h.SetAvailability)
		r.Delete("/{id}", h.Delete)
	})

	return r
}
