package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/sbilibin2017/recipe-app-api/internal/logger"
	"github.com/sbilibin2017/recipe-app-api/internal/models"
)

//go:generate mockgen -source=tag.go -destination=mock_tag.go -package=services

var (
	ErrTagNotFound      = errors.New("tag not found")
	ErrTagAlreadyExists = errors.New("tag with this name already exists")
)

// TagReader lists a user's tags.
type TagReader interface {
	List(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]models.TagDB, error)
}

// TagWriter renames and deletes a user's tags.
type TagWriter interface {
	Update(ctx context.Context, userID uuid.UUID, tagID int64, name string) (*models.TagDB, error)
	Delete(ctx context.Context, userID uuid.UUID, tagID int64) (bool, error)
}

// TagService serves the tag endpoints.
type TagService struct {
	reader TagReader
	writer TagWriter
}

// NewTagService creates a new TagService.
func NewTagService(reader TagReader, writer TagWriter) *TagService {
	return &TagService{reader: reader, writer: writer}
}

// List returns the user's tags, optionally only those attached to a recipe.
func (s *TagService) List(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]models.TagDB, error) {
	tags, err := s.reader.List(ctx, userID, assignedOnly)
	if err != nil {
		logger.Log.Errorw("failed to list tags", "userID", userID, "error", err)
		return nil, err
	}
	return tags, nil
}

// Update renames the user's tag.
func (s *TagService) Update(ctx context.Context, userID uuid.UUID, tagID int64, name string) (*models.TagDB, error) {
	tag, err := s.writer.Update(ctx, userID, tagID, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, ErrTagAlreadyExists
		}
		logger.Log.Errorw("failed to update tag", "userID", userID, "tagID", tagID, "error", err)
		return nil, err
	}
	if tag == nil {
		return nil, ErrTagNotFound
	}
	return tag, nil
}

// Delete removes the user's tag. Recipes carrying it keep their other tags.
func (s *TagService) Delete(ctx context.Context, userID uuid.UUID, tagID int64) error {
	ok, err := s.writer.Delete(ctx, userID, tagID)
	if err != nil {
		logger.Log.Errorw("failed to delete tag", "userID", userID, "tagID", tagID, "error", err)
		return err
	}
	if !ok {
		return ErrTagNotFound
	}
	return nil
}
