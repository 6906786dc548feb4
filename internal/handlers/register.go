package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/recipe-app-api/internal/models"
)

//go:generate mockgen -source=register.go -destination=mock_register.go -package=handlers

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, email, password, name string) (*models.UserDB, error)
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account. The email is normalized and must be unique. Password is hashed before storing.
// @Tags users
// @Accept json
// @Produce json
// @Param registerRequest body models.RegisterRequest true "User registration request"
// @Success 201 {object} models.UserResponse "User successfully registered"
// @Failure 400 {object} models.ErrorResponse "Invalid request or email already registered"
// @Failure 429 {object} models.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /users [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeServiceError(w, r, err)
			return
		}

		user, err := svc.Register(r.Context(), req.Email, req.Password, req.Name)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, models.NewUserResponse(user))
	}
}
