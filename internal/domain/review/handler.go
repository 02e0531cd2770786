package review

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pinehaven/pinehaven-api/internal/middleware"
	"github.com/pinehaven/pinehaven-api/internal/pkg/errorhandler"
	"github.com/pinehaven/pinehaven-api/internal/pkg/response"
	"github.com/pinehaven/pinehaven-api/internal/pkg/validator"
)

// Handler handles review HTTP requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new review handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /reviews
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	review, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		h.writeError(w, r, err, "REVIEW_CREATION_FAILED", "Failed to create review")
		return
	}

	response.Created(w, review)
}

// ListByRoom handles GET /reviews/room/{roomID}
func (h *Handler) ListByRoom(w http.ResponseWriter, r *http.Request) {
	roomID, err := uuid.Parse(chi.URLParam(r, "roomID"))
	if err != nil {
		response.BadRequest(w, "Invalid room ID")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	list, err := h.service.ListByRoom(r.Context(), roomID, page, limit)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "REVIEW_LIST_FAILED", "Failed to list reviews", err)
		return
	}

	response.OK(w, list)
}

// Summary handles GET /reviews/room/{roomID}/summary
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	roomID, err := uuid.Parse(chi.URLParam(r, "roomID"))
	if err != nil {
		response.BadRequest(w, "Invalid room ID")
		return
	}

	summary, err := h.service.Summary(r.Context(), roomID)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "REVIEW_SUMMARY_FAILED", "Failed to get review summary", err)
		return
	}

	response.OK(w, summary)
}

// Delete handles DELETE /reviews/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	reviewID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid review ID")
		return
	}

	if err := h.service.Delete(r.Context(), userID, reviewID); err != nil {
		h.writeError(w, r, err, "REVIEW_DELETE_FAILED", "Failed to delete review")
		return
	}

	response.NoContent(w)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, code, message string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrNotOwner):
		response.Forbidden(w, err.Error())
	case errors.Is(err, ErrAlreadyReviewed):
		response.Conflict(w, err.Error())
	case errors.Is(err, ErrStayNotComplete):
		response.Forbidden(w, err.Error())
	default:
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, code, message, err)
	}
}
