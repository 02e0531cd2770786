package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns profile router. Everything here requires authentication.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Get("/", h.Get)
	r.Put("/", h.Update)
	r.Post("/avatar", h.UploadAvatar)

	return r
}
