package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns review router.
func (h *Handler) Routes(authMiddleware, verifiedEmailMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// Public: anyone can read a room's reviews
	r.Get("/room/{roomID}", h.ListByRoom)
	r.Get("/room/{roomID}/summary", h.Summary)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Delete("/{id}", h.Delete)

		r.Group(func(r chi.Router) {
			r.Use(verifiedEmailMiddleware)
			r.Post("/", h.Create)
		})
	})

	return r
}
