package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/sbilibin2017/recipe-app-api/internal/models"
	"github.com/sbilibin2017/recipe-app-api/internal/validation"
)

//go:generate mockgen -source=recipes.go -destination=mock_recipes.go -package=handlers

// RecipeManager defines the recipe operations the handlers need.
type RecipeManager interface {
	Create(ctx context.Context, userID uuid.UUID, fields models.RecipeFields) (*models.Recipe, error)
	Get(ctx context.Context, userID uuid.UUID, recipeID int64) (*models.Recipe, error)
	List(ctx context.Context, userID uuid.UUID, tagIDs []int64) ([]models.Recipe, error)
	Update(ctx context.Context, userID uuid.UUID, recipeID int64, fields models.RecipeFields) (*models.Recipe, error)
	Delete(ctx context.Context, userID uuid.UUID, recipeID int64) error
	UploadImage(ctx context.Context, userID uuid.UUID, recipeID int64, data []byte) (*models.Recipe, error)
}

// NewListRecipesHandler returns an HTTP handler listing the user's recipes.
// @Summary List recipes
// @Description Returns the user's recipes, newest first. tags keeps recipes carrying any of the given tag ids.
// @Tags recipes
// @Produce json
// @Param tags query string false "Comma separated tag ids" example(1,2)
// @Success 200 {array} models.RecipeResponse "Recipes"
// @Failure 400 {object} models.ErrorResponse "Malformed filter"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /recipes [get]
// @Security BearerAuth
func NewListRecipesHandler(svc RecipeManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		tagIDs, err := parseIDList("tags", r.URL.Query().Get("tags"))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		recipes, err := svc.List(r.Context(), userID, tagIDs)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		resp := make([]models.RecipeResponse, 0, len(recipes))
		for i := range recipes {
			resp = append(resp, models.NewRecipeResponse(&recipes[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// NewCreateRecipeHandler returns an HTTP handler creating a recipe.
// @Summary Create a recipe
// @Description Tags are resolved by name for the current user and created when missing.
// @Tags recipes
// @Accept json
// @Produce json
// @Param recipe body models.RecipeCreateRequest true "Recipe"
// @Success 201 {object} models.RecipeDetailResponse "Created recipe"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /recipes [post]
// @Security BearerAuth
func NewCreateRecipeHandler(svc RecipeManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req models.RecipeCreateRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeServiceError(w, r, err)
			return
		}

		recipe, err := svc.Create(r.Context(), userID, req.Fields())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, models.NewRecipeDetailResponse(recipe))
	}
}

// NewGetRecipeHandler returns an HTTP handler for one of the user's recipes.
// @Summary Get a recipe
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} models.RecipeDetailResponse "Recipe"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /recipes/{id} [get]
// @Security BearerAuth
func NewGetRecipeHandler(svc RecipeManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		recipe, err := svc.Get(r.Context(), userID, id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, models.NewRecipeDetailResponse(recipe))
	}
}

// NewUpdateRecipeHandler returns an HTTP handler updating a recipe.
// With full set (PUT) title, time_minutes and price are required.
// Omitting tags leaves them unchanged; an empty list clears them.
// @Summary Update a recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param recipe body models.RecipeUpdateRequest true "Fields to change"
// @Success 200 {object} models.RecipeDetailResponse "Updated recipe"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /recipes/{id} [patch]
// @Router /recipes/{id} [put]
// @Security BearerAuth
func NewUpdateRecipeHandler(svc RecipeManager, full bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req models.RecipeUpdateRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeServiceError(w, r, err)
			return
		}
		if full {
			if err := requireRecipeFields(req); err != nil {
				writeServiceError(w, r, err)
				return
			}
		}

		recipe, err := svc.Update(r.Context(), userID, id, req.Fields())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, models.NewRecipeDetailResponse(recipe))
	}
}

// NewDeleteRecipeHandler returns an HTTP handler deleting a recipe.
// @Summary Delete a recipe
// @Tags recipes
// @Param id path int true "Recipe ID"
// @Success 204 "Deleted"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /recipes/{id} [delete]
// @Security BearerAuth
func NewDeleteRecipeHandler(svc RecipeManager) http.HandlerFunc {
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

func requireRecipeFields(req models.RecipeUpdateRequest) error {
	missing := map[string]string{}
	if req.Title == nil {
		missing["title"] = "is required"
	}
	if req.TimeMinutes == nil {
		missing["time_minutes"] = "is required"
	}
	if req.Price == nil {
		missing["price"] = "is required"
	}
	if len(missing) > 0 {
		return validation.NewError("validation failed", missing)
	}
	return nil
}
