package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/sbilibin2017/recipe-app-api/internal/logger"
	"github.com/sbilibin2017/recipe-app-api/internal/media"
	"github.com/sbilibin2017/recipe-app-api/internal/models"
	"github.com/sbilibin2017/recipe-app-api/internal/validation"
)

//go:generate mockgen -source=recipe.go -destination=mock_recipe.go -package=services

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrInvalidImage   = errors.New("upload a valid image")
)

// imageDir is the media subdirectory recipe images are stored in.
const imageDir = "recipe"

// Transactor runs a unit of work in one database transaction.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// RecipeReader defines read-only operations for recipes.
type RecipeReader interface {
	GetByID(ctx context.Context, userID uuid.UUID, recipeID int64) (*models.RecipeDB, error)
	List(ctx context.Context, userID uuid.UUID, tagIDs []int64) ([]models.RecipeDB, error)
	ListTags(ctx context.Context, recipeIDs []int64) (map[int64][]models.TagDB, error)
}

// RecipeWriter defines write operations for recipes.
type RecipeWriter interface {
	Save(ctx context.Context, recipe *models.RecipeDB) error
	Update(ctx context.Context, userID uuid.UUID, recipeID int64, fields models.RecipeFields) (*models.RecipeDB, error)
	SetTags(ctx context.Context, recipeID int64, tagIDs []int64) error
	Delete(ctx context.Context, userID uuid.UUID, recipeID int64) (*models.RecipeDB, error)
	UpdateImage(ctx context.Context, userID uuid.UUID, recipeID int64, image, blurHash string) (*string, bool, error)
}

// TagGetOrCreator resolves tag names to the user's tag rows.
type TagGetOrCreator interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID, name string) (*models.TagDB, error)
}

// ImageStore persists image files.
type ImageStore interface {
	Save(name string, data []byte) error
	Delete(name string) error
	URL(name string) string
}

// RecipeService handles recipe operations and event publishing.
type RecipeService struct {
	tx     Transactor
	reader RecipeReader
	writer RecipeWriter
	tags   TagGetOrCreator
	images ImageStore
	events *EventPublisher
}

// NewRecipeService creates a new RecipeService. events may be nil.
func NewRecipeService(
	tx Transactor,
	reader RecipeReader,
	writer RecipeWriter,
	tags TagGetOrCreator,
	images ImageStore,
	events *EventPublisher,
) *RecipeService {
	return &RecipeService{
		tx:     tx,
		reader: reader,
		writer: writer,
		tags:   tags,
		images: images,
		events: events,
	}
}

// Create stores a recipe owned by userID together with its tags.
// Title, TimeMinutes and Price are required; a nil Tags creates the recipe untagged.
func (s *RecipeService) Create(ctx context.Context, userID uuid.UUID, fields models.RecipeFields) (*models.Recipe, error) {
	if err := requireFields(fields); err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		RecipeDB: models.RecipeDB{
			UserID:      userID,
			Title:       *fields.Title,
			TimeMinutes: *fields.TimeMinutes,
			Price:       *fields.Price,
			Link:        deref(fields.Link),
			Description: deref(fields.Description),
		},
	}

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.writer.Save(ctx, &recipe.RecipeDB); err != nil {
			return fmt.Errorf("save recipe: %w", err)
		}

		var names []string
		if fields.Tags != nil {
			names = *fields.Tags
		}
		tags, err := s.attachTags(ctx, userID, recipe.ID, names)
		if err != nil {
			return err
		}
		recipe.Tags = tags
		return nil
	})
	if err != nil {
		logger.Log.Errorw("failed to create recipe", "userID", userID, "error", err)
		return nil, err
	}

	s.events.Publish(ctx, models.RecipeCreated, &recipe.RecipeDB)
	return recipe, nil
}

// Get returns the user's recipe with its tags.
func (s *RecipeService) Get(ctx context.Context, userID uuid.UUID, recipeID int64) (*models.Recipe, error) {
	row, err := s.reader.GetByID(ctx, userID, recipeID)
	if err != nil {
		logger.Log.Errorw("failed to get recipe", "userID", userID, "recipeID", recipeID, "error", err)
		return nil, err
	}
	if row == nil {
		return nil, ErrRecipeNotFound
	}

	tags, err := s.reader.ListTags(ctx, []int64{row.ID})
	if err != nil {
		logger.Log.Errorw("failed to load recipe tags", "recipeID", recipeID, "error", err)
		return nil, err
	}

	return s.toRecipe(*row, tags[row.ID]), nil
}

// List returns the user's recipes, newest first. A non-empty tagIDs keeps recipes carrying
// any of those tags.
func (s *RecipeService) List(ctx context.Context, userID uuid.UUID, tagIDs []int64) ([]models.Recipe, error) {
	rows, err := s.reader.List(ctx, userID, tagIDs)
	if err != nil {
		logger.Log.Errorw("failed to list recipes", "userID", userID, "error", err)
		return nil, err
	}

	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	tags, err := s.reader.ListTags(ctx, ids)
	if err != nil {
		logger.Log.Errorw("failed to load recipe tags", "userID", userID, "error", err)
		return nil, err
	}

	recipes := make([]models.Recipe, 0, len(rows))
	for _, r := range rows {
		recipes = append(recipes, *s.toRecipe(r, tags[r.ID]))
	}
	return recipes, nil
}

// Update merges fields into the user's recipe. When fields.Tags is non-nil the recipe ends up
// with exactly those tags; otherwise its tags are left as they are.
func (s *RecipeService) Update(ctx context.Context, userID uuid.UUID, recipeID int64, fields models.RecipeFields) (*models.Recipe, error) {
	var recipe *models.Recipe

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		row, err := s.writer.Update(ctx, userID, recipeID, fields)
		if err != nil {
			return fmt.Errorf("update recipe: %w", err)
		}
		if row == nil {
			return ErrRecipeNotFound
		}

		var tags []models.TagDB
		if fields.Tags != nil {
			tags, err = s.attachTags(ctx, userID, row.ID, *fields.Tags)
		} else {
			var byRecipe map[int64][]models.TagDB
			byRecipe, err = s.reader.ListTags(ctx, []int64{row.ID})
			tags = byRecipe[row.ID]
		}
		if err != nil {
			return err
		}

		recipe = s.toRecipe(*row, tags)
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrRecipeNotFound) {
			logger.Log.Errorw("failed to update recipe", "userID", userID, "recipeID", recipeID, "error", err)
		}
		return nil, err
	}

	s.events.Publish(ctx, models.RecipeUpdated, &recipe.RecipeDB)
	return recipe, nil
}

// Delete removes the user's recipe and its image file.
func (s *RecipeService) Delete(ctx context.Context, userID uuid.UUID, recipeID int64) error {
	row, err := s.writer.Delete(ctx, userID, recipeID)
	if err != nil {
		logger.Log.Errorw("failed to delete recipe", "userID", userID, "recipeID", recipeID, "error", err)
		return err
	}
	if row == nil {
		return ErrRecipeNotFound
	}

	if row.Image != nil {
		s.removeImage(*row.Image)
	}

	s.events.Publish(ctx, models.RecipeDeleted, row)
	return nil
}

// UploadImage validates data as an image, stores it and points the recipe at it.
// The replaced image file is removed. The returned recipe has no tags loaded.
func (s *RecipeService) UploadImage(ctx context.Context, userID uuid.UUID, recipeID int64, data []byte) (*models.Recipe, error) {
	row, err := s.reader.GetByID(ctx, userID, recipeID)
	if err != nil {
		logger.Log.Errorw("failed to get recipe", "userID", userID, "recipeID", recipeID, "error", err)
		return nil, err
	}
	if row == nil {
		return nil, ErrRecipeNotFound
	}

	info, err := media.Inspect(data)
	if err != nil {
		logger.Log.Infow("rejected image upload", "recipeID", recipeID, "error", err)
		return nil, ErrInvalidImage
	}

	name := fmt.Sprintf("%s/%s.%s", imageDir, uuid.NewString(), info.Ext)
	if err := s.images.Save(name, data); err != nil {
		logger.Log.Errorw("failed to store image", "name", name, "error", err)
		return nil, err
	}

	previous, found, err := s.writer.UpdateImage(ctx, userID, recipeID, name, info.BlurHash)
	if err != nil || !found {
		s.removeImage(name)
		if err != nil {
			logger.Log.Errorw("failed to update recipe image", "recipeID", recipeID, "error", err)
			return nil, err
		}
		return nil, ErrRecipeNotFound
	}
	if previous != nil && *previous != name {
		s.removeImage(*previous)
	}

	row.Image = &name
	row.ImageBlurHash = nil
	if info.BlurHash != "" {
		row.ImageBlurHash = &info.BlurHash
	}

	s.events.Publish(ctx, models.RecipeImageUploaded, row)
	return s.toRecipe(*row, nil), nil
}

// attachTags resolves names to the user's tags and makes them the recipe's tag set.
// Duplicate names collapse to a single tag.
func (s *RecipeService) attachTags(ctx context.Context, userID uuid.UUID, recipeID int64, names []string) ([]models.TagDB, error) {
	seen := make(map[string]struct{}, len(names))
	tags := make([]models.TagDB, 0, len(names))
	ids := make([]int64, 0, len(names))

	for _, name := range names {
		name = strings.TrimSpace(name)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		tag, err := s.tags.GetOrCreate(ctx, userID, name)
		if err != nil {
			return nil, fmt.Errorf("get or create tag %q: %w", name, err)
		}
		tags = append(tags, *tag)
		ids = append(ids, tag.ID)
	}

	if err := s.writer.SetTags(ctx, recipeID, ids); err != nil {
		return nil, fmt.Errorf("set recipe tags: %w", err)
	}

	sort.Slice(tags, func(i, j int) bool { return tags[i].ID < tags[j].ID })
	return tags, nil
}

func (s *RecipeService) toRecipe(row models.RecipeDB, tags []models.TagDB) *models.Recipe {
	recipe := &models.Recipe{RecipeDB: row, Tags: tags}
	if recipe.Tags == nil {
		recipe.Tags = []models.TagDB{}
	}
	if row.Image != nil {
		url := s.images.URL(*row.Image)
		recipe.ImageURL = &url
	}
	return recipe
}

func (s *RecipeService) removeImage(name string) {
	if err := s.images.Delete(name); err != nil {
		logger.Log.Warnw("failed to remove image file", "name", name, "error", err)
	}
}

func requireFields(fields models.RecipeFields) error {
	missing := map[string]string{}
	if fields.Title == nil {
		missing["title"] = "is required"
	}
	if fields.TimeMinutes == nil {
		missing["time_minutes"] = "is required"
	}
	if fields.Price == nil {
		missing["price"] = "is required"
	}
	if len(missing) > 0 {
		return validation.NewError("validation failed", missing)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
