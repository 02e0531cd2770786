package room

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pinehaven/pinehaven-api/internal/pkg/errorhandler"
	"github.com/pinehaven/pinehaven-api/internal/pkg/response"
	"github.com/pinehaven/pinehaven-api/internal/pkg/validator"
)

// Handler handles room HTTP requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new room handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /rooms?featured=&limit=&offset=
// Public: returns available rooms. Admins may pass ?all=true for the full
// catalog.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ListFilter{
		OnlyAvailable: q.Get("all") != "true",
		FeaturedOnly:  q.Get("featured") == "true",
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil {
		filter.Offset = v
	}

	rooms, err := h.service.List(r.Context(), filter)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "ROOM_LIST_FAILED", "Failed to list rooms", err)
		return
	}

	response.OK(w, rooms)
}

// Get handles GET /rooms/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid room ID")
		return
	}

	room, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err, "ROOM_GET_FAILED", "Failed to get room")
		return
	}

	response.OK(w, room)
}

// Availability handles GET /rooms/{id}/availability?check_in=&check_out=
func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid room ID")
		return
	}

	checkIn, err := time.Parse("2006-01-02", r.URL.Query().Get("check_in"))
	if err != nil {
		response.BadRequest(w, "check_in must be a YYYY-MM-DD date")
		return
	}
	checkOut, err := time.Parse("2006-01-02", r.URL.Query().Get("check_out"))
	if err != nil {
		response.BadRequest(w, "check_out must be a YYYY-MM-DD date")
		return
	}
	if !checkOut.After(checkIn) {
		response.BadRequest(w, "check_out must be after check_in")
		return
	}

	availability, err := h.service.CheckAvailability(r.Context(), id, checkIn, checkOut)
	if err != nil {
		h.writeError(w, r, err, "ROOM_AVAILABILITY_FAILED", "Failed to check availability")
		return
	}

	response.OK(w, availability)
}

// SetAvailability handles PUT /rooms/{id}/availability (admin)
func (h *Handler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid room ID")
		return
	}

	var req SetAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	room, err := h.service.SetAvailability(r.Context(), id, *req.Available)
	if err != nil {
		h.writeError(w, r, err, "ROOM_AVAILABILITY_UPDATE_FAILED", "Failed to update availability")
		return
	}

	response.OK(w, room)
}

// Create handles POST /rooms (admin)
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	room, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err, "ROOM_CREATION_FAILED", "Failed to create room")
		return
	}

	response.Created(w, room)
}

// Update handles PUT /rooms/{id} (admin)
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid room ID")
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	room, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, r, err, "ROOM_UPDATE_FAILED", "Failed to update room")
		return
	}

	response.OK(w, room)
}

// Delete handles DELETE /rooms/{id} (admin)
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid room ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err, "ROOM_DELETE_FAILED", "Failed to delete room")
		return
	}

	response.NoContent(w)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, code, message string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrInvalidPrice):
		response.BadRequest(w, err.Error())
	default:
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, code, message, err)
	}
}
