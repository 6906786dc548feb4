package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sbilibin2017/recipe-app-api/internal/logger"
	"github.com/sbilibin2017/recipe-app-api/internal/middlewares"
	"github.com/sbilibin2017/recipe-app-api/internal/models"
	"github.com/sbilibin2017/recipe-app-api/internal/services"
	"github.com/sbilibin2017/recipe-app-api/internal/validation"
)

const notFoundMessage = "Not found."

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Errorw("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Error: message})
}

// writeServiceError translates service errors into HTTP responses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Error

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: verr.Message, Fields: verr.Fields})
	case errors.Is(err, services.ErrUserAlreadyExists):
		writeFieldError(w, "email", err)
	case errors.Is(err, services.ErrTagAlreadyExists):
		writeFieldError(w, "name", err)
	case errors.Is(err, services.ErrInvalidImage):
		writeFieldError(w, "image", err)
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "Invalid token.")
	case errors.Is(err, services.ErrRecipeNotFound),
		errors.Is(err, services.ErrTagNotFound),
		errors.Is(err, services.ErrUserNotFound):
		writeError(w, http.StatusNotFound, notFoundMessage)
	default:
		logger.Log.Errorw("internal server error",
			"request_id", middlewares.GetRequestID(r.Context()),
			"method", r.Method,
			"uri", r.RequestURI,
			"err", err,
		)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func writeFieldError(w http.ResponseWriter, field string, err error) {
	writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
		Error:  "validation failed",
		Fields: map[string]string{field: err.Error()},
	})
}

// decodeAndValidate reads a JSON body into dst and runs its validate tags.
func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return validation.NewError("request body is empty", nil)
		}
		return validation.NewError("malformed JSON: "+err.Error(), nil)
	}
	return validation.Validate(dst)
}

// currentUser returns the user set by the auth middleware.
// Handlers are only mounted behind it, so a missing id is a wiring bug.
func currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middlewares.GetUserIDFromContext(r.Context())
	if !ok {
		logger.Log.Errorw("handler reached without authenticated user", "uri", r.RequestURI)
		writeError(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
	}
	return userID, ok
}

// pathID parses the {id} URL parameter. Non-numeric ids cannot match any row.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusNotFound, notFoundMessage)
		return 0, false
	}
	return id, true
}
