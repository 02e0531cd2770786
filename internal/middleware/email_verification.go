package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pinehaven/pinehaven-api/internal/domain/user"
	"github.com/pinehaven/pinehaven-api/internal/pkg/response"
)

// RequireVerifiedEmail blocks booking-type actions for authenticated users
// whose email is not verified yet.
func RequireVerifiedEmail(userRepo user.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := GetUserID(r.Context())
			if userID == uuid.Nil {
				response.Unauthorized(w, "Authentication required")
				return
			}

			u, err := userRepo.GetByID(r.Context(), userID)
			if err != nil || u == nil {
				response.Unauthorized(w, "Authentication required")
				return
			}

			if !u.EmailVerified {
				response.Error(w, http.StatusForbidden, "EMAIL_NOT_VERIFIED", "Email is not verified")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
