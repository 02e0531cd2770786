package booking

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pinehaven/pinehaven-api/internal/middleware"
	"github.com/pinehaven/pinehaven-api/internal/pkg/errorhandler"
	"github.com/pinehaven/pinehaven-api/internal/pkg/response"
	"github.com/pinehaven/pinehaven-api/internal/pkg/validator"
)

// Handler handles booking HTTP requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new booking handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Quote handles POST /bookings/quote
// Public endpoint: prices a prospective stay without creating anything.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	quote, err := h.service.Quote(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err, "QUOTE_FAILED", "Failed to compute quote")
		return
	}

	response.OK(w, quote)
}

// Create handles POST /bookings
// Requires authentication - extracts identity from context.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	identity := Identity{
		UserID: middleware.GetUserID(r.Context()),
		Email:  middleware.GetEmail(r.Context()),
	}
	if identity.IsZero() {
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

	booking, err := h.service.Create(r.Context(), identity, &req)
	if err != nil {
		h.writeError(w, r, err, "BOOKING_CREATION_FAILED", "Failed to create booking")
		return
	}

	response.Created(w, booking)
}

// ListMy handles GET /bookings/my
func (h *Handler) ListMy(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	bookings, err := h.service.ListMy(r.Context(), userID)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "BOOKING_LIST_FAILED", "Failed to list bookings", err)
		return
	}

	response.OK(w, bookings)
}

// Get handles GET /bookings/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	booking, err := h.service.GetByID(r.Context(), userID, bookingID)
	if err != nil {
		h.writeError(w, r, err, "BOOKING_GET_FAILED", "Failed to get booking")
		return
	}

	response.OK(w, booking)
}

// UpdateDates handles PUT /bookings/{id}
func (h *Handler) UpdateDates(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	var req UpdateDatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	booking, err := h.service.UpdateDates(r.Context(), userID, bookingID, &req)
	if err != nil {
		h.writeError(w, r, err, "BOOKING_UPDATE_FAILED", "Failed to update booking")
		return
	}

	response.OK(w, booking)
}

// Cancel handles DELETE /bookings/{id}
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	if err := h.service.Cancel(r.Context(), userID, bookingID); err != nil {
		h.writeError(w, r, err, "BOOKING_CANCEL_FAILED", "Failed to cancel booking")
		return
	}

	response.NoContent(w)
}

// writeError maps domain errors to HTTP responses.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, code, message string) {
	switch {
	case errors.Is(err, ErrCheckOutNotAfterCheckIn),
		errors.Is(err, ErrCheckInInPast):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrMissingIdentity):
		response.Unauthorized(w, err.Error())
	case errors.Is(err, ErrRoomNotFound), errors.Is(err, ErrBookingNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrNotOwner):
		response.Forbidden(w, err.Error())
	case errors.Is(err, ErrRoomUnavailable),
		errors.Is(err, ErrSubmissionInFlight),
		errors.Is(err, ErrCancelWindowClosed):
		response.Conflict(w, err.Error())
	default:
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, code, message, err)
	}
}
