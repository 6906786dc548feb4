package services_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/recipe-app-api/internal/models"
	"github.com/sbilibin2017/recipe-app-api/internal/services"
	"github.com/sbilibin2017/recipe-app-api/internal/validation"
)

type recipeMocks struct {
	tx     *services.MockTransactor
	reader *services.MockRecipeReader
	writer *services.MockRecipeWriter
	tags   *services.MockTagGetOrCreator
	images *services.MockImageStore
	kafka  *services.MockKafkaWriter
}

func newRecipeService(t *testing.T) (*services.RecipeService, recipeMocks) {
	ctrl := gomock.NewController(t)
	m := recipeMocks{
		tx:     services.NewMockTransactor(ctrl),
		reader: services.NewMockRecipeReader(ctrl),
		writer: services.NewMockRecipeWriter(ctrl),
		tags:   services.NewMockTagGetOrCreator(ctrl),
		images: services.NewMockImageStore(ctrl),
		kafka:  services.NewMockKafkaWriter(ctrl),
	}
	m.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).AnyTimes()
	m.images.EXPECT().URL(gomock.Any()).
		DoAndReturn(func(name string) string { return "/media/" + name }).AnyTimes()

	svc := services.NewRecipeService(m.tx, m.reader, m.writer, m.tags, m.images, services.NewEventPublisher(m.kafka))
	return svc, m
}

func ptr[T any](v T) *T { return &v }

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return buf.Bytes()
}

func TestRecipeService_Create(t *testing.T) {
	userID := uuid.New()

	t.Run("duplicate tag names collapse", func(t *testing.T) {
		svc, m := newRecipeService(t)

		m.writer.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, r *models.RecipeDB) error {
				assert.Equal(t, userID, r.UserID)
				assert.Equal(t, "Curry", r.Title)
				r.ID = 10
				return nil
			})
		m.tags.EXPECT().GetOrCreate(gomock.Any(), userID, "thai").
			Return(&models.TagDB{ID: 2, UserID: userID, Name: "thai"}, nil).Times(1)
		m.tags.EXPECT().GetOrCreate(gomock.Any(), userID, "vegan").
			Return(&models.TagDB{ID: 1, UserID: userID, Name: "vegan"}, nil).Times(1)
		m.writer.EXPECT().SetTags(gomock.Any(), int64(10), []int64{2, 1}).Return(nil)
		m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

		fields := models.RecipeFields{
			Title:       ptr("Curry"),
			TimeMinutes: ptr(30),
			Price:       ptr(models.Decimal("5.50")),
			Tags:        &[]string{"thai", "vegan", "thai", " thai "},
		}
		recipe, err := svc.Create(context.Background(), userID, fields)
		require.NoError(t, err)
		assert.Equal(t, int64(10), recipe.ID)
		require.Len(t, recipe.Tags, 2)
		assert.Equal(t, "vegan", recipe.Tags[0].Name, "tags ordered by id")
	})

	t.Run("missing required fields", func(t *testing.T) {
		svc, _ := newRecipeService(t)

		_, err := svc.Create(context.Background(), userID, models.RecipeFields{Title: ptr("x")})
		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "price")
		assert.Contains(t, verr.Fields, "time_minutes")
	})

	t.Run("tag failure aborts without event", func(t *testing.T) {
		svc, m := newRecipeService(t)

		m.writer.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
		m.tags.EXPECT().GetOrCreate(gomock.Any(), userID, "thai").Return(nil, errors.New("db error"))

		fields := models.RecipeFields{
			Title:       ptr("Curry"),
			TimeMinutes: ptr(30),
			Price:       ptr(models.Decimal("5.50")),
			Tags:        &[]string{"thai"},
		}
		_, err := svc.Create(context.Background(), userID, fields)
		assert.ErrorContains(t, err, "db error")
	})

	t.Run("publish failure does not fail create", func(t *testing.T) {
		svc, m := newRecipeService(t)

		m.writer.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
		m.writer.EXPECT().SetTags(gomock.Any(), gomock.Any(), []int64{}).Return(nil)
		m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		fields := models.RecipeFields{Title: ptr("Toast"), TimeMinutes: ptr(5), Price: ptr(models.Decimal("1"))}
		recipe, err := svc.Create(context.Background(), userID, fields)
		require.NoError(t, err)
		assert.NotNil(t, recipe.Tags)
		assert.Empty(t, recipe.Tags)
	})
}

func TestRecipeService_Get(t *testing.T) {
	userID := uuid.New()

	t.Run("not found", func(t *testing.T) {
		svc, m := newRecipeService(t)
		m.reader.EXPECT().GetByID(gomock.Any(), userID, int64(1)).Return(nil, nil)

		_, err := svc.Get(context.Background(), userID, 1)
		assert.ErrorIs(t, err, services.ErrRecipeNotFound)
	})

	t.Run("with tags and image url", func(t *testing.T) {
		svc, m := newRecipeService(t)
		m.reader.EXPECT().GetByID(gomock.Any(), userID, int64(1)).
			Return(&models.RecipeDB{ID: 1, UserID: userID, Image: ptr("recipe/a.png")}, nil)
		m.reader.EXPECT().ListTags(gomock.Any(), []int64{1}).
			Return(map[int64][]models.TagDB{1: {{ID: 3, Name: "thai"}}}, nil)

		recipe, err := svc.Get(context.Background(), userID, 1)
		require.NoError(t, err)
		assert.Equal(t, "/media/recipe/a.png", *recipe.ImageURL)
		assert.Len(t, recipe.Tags, 1)
	})
}

func TestRecipeService_List(t *testing.T) {
	svc, m := newRecipeService(t)
	userID := uuid.New()

	m.reader.EXPECT().List(gomock.Any(), userID, []int64{3}).
		Return([]models.RecipeDB{{ID: 2}, {ID: 1}}, nil)
	m.reader.EXPECT().ListTags(gomock.Any(), []int64{2, 1}).
		Return(map[int64][]models.TagDB{1: {{ID: 3, Name: "thai"}}}, nil)

	recipes, err := svc.List(context.Background(), userID, []int64{3})
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Empty(t, recipes[0].Tags)
	assert.Len(t, recipes[1].Tags, 1)
}

func TestRecipeService_Update(t *testing.T) {
	userID := uuid.New()

	t.Run("absent tags keep associations", func(t *testing.T) {
		svc, m := newRecipeService(t)
		fields := models.RecipeFields{Title: ptr("New")}

		m.writer.EXPECT().Update(gomock.Any(), userID, int64(5), fields).
			Return(&models.RecipeDB{ID: 5, UserID: userID, Title: "New"}, nil)
		m.reader.EXPECT().ListTags(gomock.Any(), []int64{5}).
			Return(map[int64][]models.TagDB{5: {{ID: 1, Name: "old"}}}, nil)
		m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

		recipe, err := svc.Update(context.Background(), userID, 5, fields)
		require.NoError(t, err)
		assert.Equal(t, "old", recipe.Tags[0].Name)
	})

	t.Run("empty tags clear associations", func(t *testing.T) {
		svc, m := newRecipeService(t)
		fields := models.RecipeFields{Tags: &[]string{}}

		m.writer.EXPECT().Update(gomock.Any(), userID, int64(5), fields).
			Return(&models.RecipeDB{ID: 5, UserID: userID}, nil)
		m.writer.EXPECT().SetTags(gomock.Any(), int64(5), []int64{}).Return(nil)
		m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

		recipe, err := svc.Update(context.Background(), userID, 5, fields)
		require.NoError(t, err)
		assert.Empty(t, recipe.Tags)
	})

	t.Run("foreign recipe", func(t *testing.T) {
		svc, m := newRecipeService(t)
		m.writer.EXPECT().Update(gomock.Any(), userID, int64(5), gomock.Any()).Return(nil, nil)

		_, err := svc.Update(context.Background(), userID, 5, models.RecipeFields{Tags: &[]string{"x"}})
		assert.ErrorIs(t, err, services.ErrRecipeNotFound)
	})
}

func TestRecipeService_Delete(t *testing.T) {
	userID := uuid.New()

	t.Run("removes image file", func(t *testing.T) {
		svc, m := newRecipeService(t)
		m.writer.EXPECT().Delete(gomock.Any(), userID, int64(5)).
			Return(&models.RecipeDB{ID: 5, UserID: userID, Image: ptr("recipe/a.png")}, nil)
		m.images.EXPECT().Delete("recipe/a.png").Return(nil)
		m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), userID, 5))
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newRecipeService(t)
		m.writer.EXPECT().Delete(gomock.Any(), userID, int64(5)).Return(nil, nil)

		assert.ErrorIs(t, svc.Delete(context.Background(), userID, 5), services.ErrRecipeNotFound)
	})
}

func TestRecipeService_UploadImage(t *testing.T) {
	userID := uuid.New()
	row := func() *models.RecipeDB { return &models.RecipeDB{ID: 5, UserID: userID} }

	t.Run("replaces previous image", func(t *testing.T) {
		svc, m := newRecipeService(t)
		data := pngBytes(t)

		var stored string
		m.reader.EXPECT().GetByID(gomock.Any(), userID, int64(5)).Return(row(), nil)
		m.images.EXPECT().Save(gomock.Any(), data).DoAndReturn(func(name string, _ []byte) error {
			stored = name
			return nil
		})
		m.writer.EXPECT().UpdateImage(gomock.Any(), userID, int64(5), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, _ int64, image, _ string) (*string, bool, error) {
				assert.Equal(t, stored, image)
				return ptr("recipe/old.png"), true, nil
			})
		m.images.EXPECT().Delete("recipe/old.png").Return(nil)
		m.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

		recipe, err := svc.UploadImage(context.Background(), userID, 5, data)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(stored, "recipe/"))
		assert.True(t, strings.HasSuffix(stored, ".png"))
		assert.Equal(t, "/media/"+stored, *recipe.ImageURL)
	})

	t.Run("not an image", func(t *testing.T) {
		svc, m := newRecipeService(t)
		m.reader.EXPECT().GetByID(gomock.Any(), userID, int64(5)).Return(row(), nil)

		_, err := svc.UploadImage(context.Background(), userID, 5, []byte("notimage"))
		assert.ErrorIs(t, err, services.ErrInvalidImage)
	})

	t.Run("missing recipe checked before payload", func(t *testing.T) {
		svc, m := newRecipeService(t)
		m.reader.EXPECT().GetByID(gomock.Any(), userID, int64(5)).Return(nil, nil)

		_, err := svc.UploadImage(context.Background(), userID, 5, []byte("notimage"))
		assert.ErrorIs(t, err, services.ErrRecipeNotFound)
	})

	t.Run("recipe deleted concurrently removes new file", func(t *testing.T) {
		svc, m := newRecipeService(t)
		data := pngBytes(t)

		var stored string
		m.reader.EXPECT().GetByID(gomock.Any(), userID, int64(5)).Return(row(), nil)
		m.images.EXPECT().Save(gomock.Any(), data).DoAndReturn(func(name string, _ []byte) error {
			stored = name
			return nil
		})
		m.writer.EXPECT().UpdateImage(gomock.Any(), userID, int64(5), gomock.Any(), gomock.Any()).
			Return(nil, false, nil)
		m.images.EXPECT().Delete(gomock.Any()).DoAndReturn(func(name string) error {
			assert.Equal(t, stored, name)
			return nil
		})

		_, err := svc.UploadImage(context.Background(), userID, 5, data)
		assert.ErrorIs(t, err, services.ErrRecipeNotFound)
	})
}
