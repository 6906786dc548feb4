package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/sbilibin2017/recipe-app-api/internal/logger"
	"github.com/sbilibin2017/recipe-app-api/internal/services"
)

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=middlewares

// Tokener extracts the raw token from a request.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
}

// Authenticator resolves a token to the acting user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (uuid.UUID, error)
}

type userIDKey struct{}

// WithUserID stores the authenticated user id in the context.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// GetUserIDFromContext returns the authenticated user id, if any.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	return userID, ok
}

// AuthMiddleware rejects requests without a valid token and stores the user id in the context.
func AuthMiddleware(tokener Tokener, auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Infow("authorization failed", "err", err)
				writeError(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
				return
			}

			userID, err := auth.Authenticate(ctx, tokenString)
			if err != nil {
				if errors.Is(err, services.ErrInvalidToken) {
					logger.Log.Infow("authorization failed", "err", err)
					writeError(w, http.StatusUnauthorized, "Invalid token.")
					return
				}
				logger.Log.Errorw("authentication error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			noteUser(ctx, userID)
			next.ServeHTTP(w, r.WithContext(WithUserID(ctx, userID)))
		})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
