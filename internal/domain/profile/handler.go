package profile

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/pinehaven/pinehaven-api/internal/middleware"
	"github.com/pinehaven/pinehaven-api/internal/pkg/errorhandler"
	"github.com/pinehaven/pinehaven-api/internal/pkg/response"
	"github.com/pinehaven/pinehaven-api/internal/pkg/storage"
	"github.com/pinehaven/pinehaven-api/internal/pkg/validator"
)

// Handler handles profile HTTP requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new profile handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Get handles GET /profile
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	p, err := h.service.Get(r.Context(), userID)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "PROFILE_GET_FAILED", "Failed to get profile", err)
		return
	}

	response.OK(w, p)
}

// Update handles PUT /profile
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "User not authenticated")
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

	p, err := h.service.Update(r.Context(), userID, &req)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "PROFILE_UPDATE_FAILED", "Failed to update profile", err)
		return
	}

	response.OK(w, p)
}

// UploadAvatar handles POST /profile/avatar (multipart form, field "avatar")
func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Unauthorized(w, "User not authenticated")
		return
	}

	if err := r.ParseMultipartForm(storage.MaxAvatarSize); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	file, _, err := r.FormFile("avatar")
	if err != nil {
		response.BadRequest(w, "Missing 'avatar' file field")
		return
	}
	defer file.Close()

	result, err := h.service.UploadAvatar(r.Context(), userID, file)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrFileTooLarge),
			errors.Is(err, storage.ErrInvalidMimeType),
			errors.Is(err, storage.ErrEmptyFile):
			response.BadRequest(w, err.Error())
		default:
			errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "AVATAR_UPLOAD_FAILED", "Failed to upload avatar", err)
		}
		return
	}

	response.OK(w, result)
}
