package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/sbilibin2017/recipe-app-api/internal/models"
)

//go:generate mockgen -source=tags.go -destination=mock_tags.go -package=handlers

// TagManager defines the tag operations the handlers need.
type TagManager interface {
	List(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]models.TagDB, error)
	Update(ctx context.Context, userID uuid.UUID, tagID int64, name string) (*models.TagDB, error)
	Delete(ctx context.Context, userID uuid.UUID, tagID int64) error
}

// NewListTagsHandler returns an HTTP handler listing the user's tags.
// @Summary List tags
// @Description Returns the user's tags ordered by name descending. assigned_only=1 keeps tags used by a recipe.
// @Tags tags
// @Produce json
// @Param assigned_only query int false "0 or 1" Enums(0, 1)
// @Success 200 {array} models.TagResponse "Tags"
// @Failure 400 {object} models.ErrorResponse "Malformed filter"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /tags [get]
// @Security BearerAuth
func NewListTagsHandler(svc TagManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		assignedOnly, err := parseFlag("assigned_only", r.URL.Query().Get("assigned_only"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		tags, err := svc.List(r.Context(), userID, assignedOnly)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, models.NewTagResponses(tags))
	}
}

// NewUpdateTagHandler returns an HTTP handler renaming a tag.
// @Summary Rename a tag
// @Tags tags
// @Accept json
// @Produce json
// @Param id path int true "Tag ID"
// @Param tag body models.TagRequest true "New name"
// @Success 200 {object} models.TagResponse "Updated tag"
// @Failure 400 {object} models.ErrorResponse "Invalid request or name already used"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /tags/{id} [patch]
// @Router /tags/{id} [put]
// @Security BearerAuth
func NewUpdateTagHandler(svc TagManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req models.TagRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeServiceError(w, r, err)
			return
		}

		tag, err := svc.Update(r.Context(), userID, id, req.Name)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, models.NewTagResponse(*tag))
	}
}

// NewDeleteTagHandler returns an HTTP handler deleting a tag.
// @Summary Delete a tag
// @Description Recipes carrying the tag are kept.
// @Tags tags
// @Param id path int true "Tag ID"
// @Success 204 "Deleted"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /tags/{id} [delete]
// @Security BearerAuth
func NewDeleteTagHandler(svc TagManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), userID, id); err != nil {
			writeServiceError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
