package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/recipe-app-api/internal/models"
)

//go:generate mockgen -source=token.go -destination=mock_token.go -package=handlers

// Loginer defines the interface that the service must implement.
type Loginer interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// NewTokenHandler returns an HTTP handler exchanging credentials for a token.
// @Summary Obtain an auth token
// @Description Authenticates with email and password and returns a token. A new token invalidates the previous one.
// @Tags users
// @Accept json
// @Produce json
// @Param tokenRequest body models.TokenRequest true "User credentials"
// @Success 200 {object} models.TokenResponse "Token"
// @Failure 400 {object} models.ErrorResponse "Invalid or blank credentials"
// @Failure 429 {object} models.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /users/token [post]
func NewTokenHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.TokenRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeServiceError(w, r, err)
			return
		}

		token, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, models.TokenResponse{Token: token})
	}
}
