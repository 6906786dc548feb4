package handlers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/recipe-app-api/internal/models"
	"github.com/sbilibin2017/recipe-app-api/internal/services"
)

func sampleRecipe() *models.Recipe {
	return &models.Recipe{
		RecipeDB: models.RecipeDB{
			ID:          1,
			Title:       "Curry",
			TimeMinutes: 30,
			Price:       "5.50",
			Description: "Spicy",
		},
		Tags: []models.TagDB{{ID: 2, Name: "thai"}},
	}
}

func TestListRecipesHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("list shape and tag filter", func(t *testing.T) {
		m := NewMockRecipeManager(gomock.NewController(t))
		m.EXPECT().List(gomock.Any(), userID, []int64{1, 2}).Return([]models.Recipe{*sampleRecipe()}, nil)

		rr := serve(NewListRecipesHandler(m), http.MethodGet, "/recipes", "/recipes?tags=1,2", nil, userID)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[{"id":1,"title":"Curry","time_minutes":30,"price":"5.50","link":"",
			"tags":[{"id":2,"name":"thai"}]}]`, rr.Body.String())
	})

	t.Run("empty list is an array", func(t *testing.T) {
		m := NewMockRecipeManager(gomock.NewController(t))
		m.EXPECT().List(gomock.Any(), userID, []int64(nil)).Return(nil, nil)

		rr := serve(NewListRecipesHandler(m), http.MethodGet, "/recipes", "/recipes", nil, userID)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("malformed tag filter", func(t *testing.T) {
		m := NewMockRecipeManager(gomock.NewController(t))

		rr := serve(NewListRecipesHandler(m), http.MethodGet, "/recipes", "/recipes?tags=1,abc", nil, userID)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, decodeError(t, rr).Fields, "tags")
	})
}

func TestCreateRecipeHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("created with detail shape", func(t *testing.T) {
		m := NewMockRecipeManager(gomock.NewController(t))
		m.EXPECT().Create(gomock.Any(), userID, gomock.Any()).DoAndReturn(
			func(_ any, _ uuid.UUID, f models.RecipeFields) (*models.Recipe, error) {
				assert.Equal(t, "Curry", *f.Title)
				assert.Equal(t, models.Decimal("5.5"), *f.Price)
				assert.Equal(t, []string{"thai"}, *f.Tags)
				return sampleRecipe(), nil
			})

		body := `{"title":"Curry","time_minutes":30,"price":5.5,"tags":[{"name":"thai"}]}`
		rr := serve(NewCreateRecipeHandler(m), http.MethodPost, "/recipes", "/recipes", jsonBody(body), userID)
		require.Equal(t, http.StatusCreated, rr.Code)

		var got map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "Spicy", got["description"])
		assert.Contains(t, got, "image")
		assert.Nil(t, got["image"])
	})

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing title", `{"time_minutes":30,"price":"5.50"}`, "title"},
		{"zero time", `{"title":"x","time_minutes":0,"price":"5.50"}`, "time_minutes"},
		{"time beyond int32", `{"title":"x","time_minutes":3000000000,"price":"5.00"}`, "time_minutes"},
		{"price too precise", `{"title":"x","time_minutes":1,"price":"5.555"}`, "price"},
		{"price too large", `{"title":"x","time_minutes":1,"price":"1000.00"}`, "price"},
		{"bad link", `{"title":"x","time_minutes":1,"price":"1","link":"not a url"}`, "link"},
		{"blank tag", `{"title":"x","time_minutes":1,"price":"1","tags":[{"name":" "}]}`, "tags[0].name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMockRecipeManager(gomock.NewController(t))

			rr := serve(NewCreateRecipeHandler(m), http.MethodPost, "/recipes", "/recipes", jsonBody(tt.body), userID)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, decodeError(t, rr).Fields, tt.field)
		})
	}
}

func TestUpdateRecipeHandler_TimeOutOfRange(t *testing.T) {
	userID := uuid.New()
	m := NewMockRecipeManager(gomock.NewController(t))

	rr := serve(NewUpdateRecipeHandler(m, false), http.MethodPatch, "/recipes/{id}", "/recipes/1",
		jsonBody(`{"time_minutes":2147483648}`), userID)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "must be less than or equal to 2147483647", decodeError(t, rr).Fields["time_minutes"])

	m.EXPECT().Update(gomock.Any(), userID, int64(1), gomock.Any()).Return(sampleRecipe(), nil)
	rr = serve(NewUpdateRecipeHandler(m, false), http.MethodPatch, "/recipes/{id}", "/recipes/1",
		jsonBody(`{"time_minutes":2147483647}`), userID)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRecipeItemHandlers(t *testing.T) {
	userID := uuid.New()

	t.Run("get foreign recipe is 404", func(t *testing.T) {
		m := NewMockRecipeManager(gomock.NewController(t))
		m.EXPECT().Get(gomock.Any(), userID, int64(9)).Return(nil, services.ErrRecipeNotFound)

		rr := serve(NewGetRecipeHandler(m), http.MethodGet, "/recipes/{id}", "/recipes/9", nil, userID)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("non-numeric id is 404", func(t *testing.T) {
		m := NewMockRecipeManager(gomock.NewController(t))

		rr := serve(NewGetRecipeHandler(m), http.MethodGet, "/recipes/{id}", "/recipes/abc", nil, userID)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("patch without tags leaves them", func(t *testing.T) {
		m := NewMockRecipeManager(gomock.NewController(t))
		m.EXPECT().Update(gomock.Any(), userID, int64(1), gomock.Any()).DoAndReturn(
			func(_ any, _ uuid.UUID, _ int64, f models.RecipeFields) (*models.Recipe, error) {
				assert.Nil(t, f.Tags)
				assert.Nil(t, f.Price)
				assert.Equal(t, "New", *f.Title)
				return sampleRecipe(), nil
			})

		rr := serve(NewUpdateRecipeHandler(m, false), http.MethodPatch, "/recipes/{id}", "/recipes/1",
			jsonBody(`{"title":"New"}`), userID)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("patch with empty tags clears them", func(t *testing.T) {
		m := NewMockRecipeManager(gomock.NewController(t))
		m.EXPECT().Update(gomock.Any(), userID, int64(1), gomock.Any()).DoAndReturn(
			func(_ any, _ uuid.UUID, _ int64, f models.RecipeFields) (*models.Recipe, error) {
				require.NotNil(t, f.Tags)
				assert.Empty(t, *f.Tags)
				return sampleRecipe(), nil
			})

		rr := serve(NewUpdateRecipeHandler(m, false), http.MethodPatch, "/recipes/{id}", "/recipes/1",
			jsonBody(`{"tags":[]}`), userID)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("put requires scalar fields", func(t *testing.T) {
		m := NewMockRecipeManager(gomock.NewController(t))

		rr := serve(NewUpdateRecipeHandler(m, true), http.MethodPut, "/recipes/{id}", "/recipes/1",
			jsonBody(`{"title":"New"}`), userID)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		fields := decodeError(t, rr).Fields
		assert.Contains(t, fields, "price")
		assert.Contains(t, fields, "time_minutes")
	})

	t.Run("delete", func(t *testing.T) {
		m := NewMockRecipeManager(gomock.NewController(t))
		m.EXPECT().Delete(gomock.Any(), userID, int64(1)).Return(nil)

		rr := serve(NewDeleteRecipeHandler(m), http.MethodDelete, "/recipes/{id}", "/recipes/1", nil, userID)
		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.String())
	})
}

func multipartImage(t *testing.T, field string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "upload.png")
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadRecipeImageHandler(t *testing.T) {
	userID := uuid.New()
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, image.NewRGBA(image.Rect(0, 0, 4, 4))))

	upload := func(m RecipeManager, field string, data []byte, maxBytes int64) *http.Response {
		body, contentType := multipartImage(t, field, data)
		h := NewUploadRecipeImageHandler(m, maxBytes)
		wrapped := func(w http.ResponseWriter, r *http.Request) {
			r.Header.Set("Content-Type", contentType)
			h(w, r)
		}
		rr := serve(wrapped, http.MethodPost, "/recipes/{id}/upload-image", "/recipes/1/upload-image", body, userID)
		return rr.Result()
	}

	t.Run("success", func(t *testing.T) {
		m := NewMockRecipeManager(gomock.NewController(t))
		m.EXPECT().UploadImage(gomock.Any(), userID, int64(1), pngBuf.Bytes()).
			Return(&models.Recipe{RecipeDB: models.RecipeDB{ID: 1}, ImageURL: ptr("/media/recipe/a.png")}, nil)

		resp := upload(m, "image", pngBuf.Bytes(), 1<<20)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got models.RecipeImageResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, int64(1), got.ID)
		assert.Equal(t, "/media/recipe/a.png", *got.Image)
	})

	t.Run("not an image", func(t *testing.T) {
		m := NewMockRecipeManager(gomock.NewController(t))
		m.EXPECT().UploadImage(gomock.Any(), userID, int64(1), []byte("notimage")).
			Return(nil, services.ErrInvalidImage)

		resp := upload(m, "image", []byte("notimage"), 1<<20)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("wrong field name", func(t *testing.T) {
		m := NewMockRecipeManager(gomock.NewController(t))

		resp := upload(m, "file", pngBuf.Bytes(), 1<<20)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("too large", func(t *testing.T) {
		m := NewMockRecipeManager(gomock.NewController(t))

		resp := upload(m, "image", bytes.Repeat([]byte{1}, 4096), 512)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
