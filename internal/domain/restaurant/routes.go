package restaurant

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns restaurant router.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// Public menu
	r.Get("/menu", h.Menu)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/reservations", h.Reserve)
		r.Get("/reservations/my", h.ListMy)
	})

	return r
}
