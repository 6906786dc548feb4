package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/sbilibin2017/recipe-app-api/internal/models"
	"github.com/sbilibin2017/recipe-app-api/internal/validation"
)

// imageFormField is the multipart field carrying the upload.
const imageFormField = "image"

// NewUploadRecipeImageHandler returns an HTTP handler attaching an image to a recipe.
// Bodies larger than maxBytes are rejected.
// @Summary Upload a recipe image
// @Description Accepts JPEG, PNG, GIF or WebP. Replaces the previous image.
// @Tags recipes
// @Accept mpfd
// @Produce json
// @Param id path int true "Recipe ID"
// @Param image formData file true "Image file"
// @Success 200 {object} models.RecipeImageResponse "Image stored"
// @Failure 400 {object} models.ErrorResponse "Missing or invalid image"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /recipes/{id}/upload-image [post]
// @Security BearerAuth
func NewUploadRecipeImageHandler(svc RecipeManager, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		file, _, err := r.FormFile(imageFormField)
		if err != nil {
			var tooLarge *http.MaxBytesError
			switch {
			case errors.As(err, &tooLarge):
				writeServiceError(w, r, validation.FieldError(imageFormField, "file is too large"))
			default:
				writeServiceError(w, r, validation.FieldError(imageFormField, "no file was submitted"))
			}
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		if len(data) == 0 {
			writeServiceError(w, r, validation.FieldError(imageFormField, "the submitted file is empty"))
			return
		}

		recipe, err := svc.UploadImage(r.Context(), userID, id, data)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, models.RecipeImageResponse{ID: recipe.ID, Image: recipe.ImageURL})
	}
}
