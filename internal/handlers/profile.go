package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/sbilibin2017/recipe-app-api/internal/models"
	"github.com/sbilibin2017/recipe-app-api/internal/validation"
)

//go:generate mockgen -source=profile.go -destination=mock_profile.go -package=handlers

// ProfileManager reads and updates the authenticated user's profile.
type ProfileManager interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, name, password *string) (*models.UserDB, error)
}

// NewGetProfileHandler returns an HTTP handler for the authenticated user's profile.
// @Summary Get own profile
// @Tags users
// @Produce json
// @Success 200 {object} models.UserResponse "Profile"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /users/me [get]
// @Security BearerAuth
func NewGetProfileHandler(svc ProfileManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		user, err := svc.GetProfile(r.Context(), userID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, models.NewUserResponse(user))
	}
}

// NewUpdateProfileHandler returns an HTTP handler updating the authenticated user's profile.
// With full set (PUT) both name and password are required; otherwise (PATCH) either may be omitted.
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Param profileUpdateRequest body models.ProfileUpdateRequest true "Fields to change"
// @Success 200 {object} models.UserResponse "Updated profile"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /users/me [patch]
// @Router /users/me [put]
// @Security BearerAuth
func NewUpdateProfileHandler(svc ProfileManager, full bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req models.ProfileUpdateRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeServiceError(w, r, err)
			return
		}
		if full {
			missing := map[string]string{}
			if req.Name == nil {
				missing["name"] = "is required"
			}
			if req.Password == nil {
				missing["password"] = "is required"
			}
			if len(missing) > 0 {
				writeServiceError(w, r, validation.NewError("validation failed", missing))
				return
			}
		}

		user, err := svc.UpdateProfile(r.Context(), userID, req.Name, req.Password)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, models.NewUserResponse(user))
	}
}
