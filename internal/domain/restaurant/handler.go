package restaurant

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/pinehaven/pinehaven-api/internal/middleware"
	"github.com/pinehaven/pinehaven-api/internal/pkg/errorhandler"
	"github.com/pinehaven/pinehaven-api/internal/pkg/response"
	"github.com/pinehaven/pinehaven-api/internal/pkg/validator"
)

// Handler handles restaurant HTTP requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new restaurant handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Menu handles GET /restaurant/menu
func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	menu, err := h.service.Menu(r.Context())
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "MENU_LIST_FAILED", "Failed to list menu", err)
		return
	}

	response.OK(w, menu)
}

// Reserve handles POST /restaurant/reservations
func (h *Handler) Reserve(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	var req CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	reservation, err := h.service.Reserve(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDishNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNoDishesChosen),
			errors.Is(err, ErrInvalidTimeSlot),
			errors.Is(err, ErrDateInPast):
			response.BadRequest(w, err.Error())
		default:
			errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "RESERVATION_FAILED", "Failed to reserve table", err)
		}
		return
	}

	response.Created(w, reservation)
}

// ListMy handles GET /restaurant/reservations/my
func (h *Handler) ListMy(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	reservations, err := h.service.ListMy(r.Context(), userID)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "RESERVATION_LIST_FAILED", "Failed to list reservations", err)
		return
	}

	response.OK(w, reservations)
}
