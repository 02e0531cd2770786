package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns booking router.
func (h *Handler) Routes(authMiddleware, verifiedEmailMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// Public: quote a prospective stay
	r.Post("/quote", h.Quote)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Get("/my", h.ListMy)
		r.Get("/{id}", h.Get)

		// Creating or changing bookings requires a verified email
		r.Group(func(r chi.Router) {
			r.Use(verifiedEmailMiddleware)
			r.Post("/", h.Create)
			r.Put("/{id}", h.UpdateDates)
			r.Delete("/{id}", h.Cancel)
		})
	})

	return r
}
