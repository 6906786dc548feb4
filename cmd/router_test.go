package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/recipe-app-api/internal/media"
)

// named returns a handler writing its own name so tests can tell routes apart.
func named(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(name))
	}
}

// headerGate rejects requests without the given header, standing in for a middleware.
func headerGate(header string, status int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get(header) == "" {
				w.WriteHeader(status)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func newTestRouter() http.Handler {
	return newRouter(testRoutes())
}

func testRoutes() routes {
	return routes{
		register:     named("register"),
		token:        named("token"),
		getProfile:   named("getProfile"),
		patchProfile: named("patchProfile"),
		putProfile:   named("putProfile"),
		listRecipes:  named("listRecipes"),
		createRecipe: named("createRecipe"),
		getRecipe:    named("getRecipe"),
		patchRecipe:  named("patchRecipe"),
		putRecipe:    named("putRecipe"),
		deleteRecipe: named("deleteRecipe"),
		uploadImage:  named("uploadImage"),
		listTags:     named("listTags"),
		updateTag:    named("updateTag"),
		deleteTag:    named("deleteTag"),
		auth:         headerGate("Authorization", http.StatusUnauthorized),
		rateLimit:    headerGate("X-Allow", http.StatusTooManyRequests),
		logging:      func(next http.Handler) http.Handler { return next },
		mediaPath: "/media/",
		media: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("media:" + r.URL.Path))
		}),
		swagger: named("swagger"),
	}
}

func TestRouter_Routes(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		method string
		target string
		want   string
	}{
		{http.MethodPost, "/users", "register"},
		{http.MethodPost, "/users/token", "token"},
		{http.MethodGet, "/users/me", "getProfile"},
		{http.MethodPatch, "/users/me", "patchProfile"},
		{http.MethodPut, "/users/me", "putProfile"},
		{http.MethodGet, "/recipes", "listRecipes"},
		{http.MethodGet, "/recipes?tags=1,2", "listRecipes"},
		{http.MethodPost, "/recipes", "createRecipe"},
		{http.MethodGet, "/recipes/7", "getRecipe"},
		{http.MethodPatch, "/recipes/7", "patchRecipe"},
		{http.MethodPut, "/recipes/7", "putRecipe"},
		{http.MethodDelete, "/recipes/7", "deleteRecipe"},
		{http.MethodPost, "/recipes/7/upload-image", "uploadImage"},
		{http.MethodGet, "/tags", "listTags"},
		{http.MethodPatch, "/tags/3", "updateTag"},
		{http.MethodPut, "/tags/3", "updateTag"},
		{http.MethodDelete, "/tags/3", "deleteTag"},
		{http.MethodGet, "/media/recipe/a.png", "media:recipe/a.png"},
		{http.MethodGet, "/swagger/index.html", "swagger"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			req.Header.Set("Authorization", "Bearer token")
			req.Header.Set("X-Allow", "1")
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tt.want, rr.Body.String())
		})
	}
}

func TestRouter_ProtectedRoutesRequireAuth(t *testing.T) {
	router := newTestRouter()

	for _, target := range []string{"/users/me", "/recipes", "/recipes/1", "/tags"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, target)
	}

	// Public routes skip auth but are rate limited.
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader("{}"))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/media/recipe/a.png", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_NotFoundAndMethodNotAllowed(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name    string
		method  string
		target  string
		status  int
		message string
	}{
		{"unknown path", http.MethodGet, "/nope", http.StatusNotFound, "Not found."},
		{"post profile", http.MethodPost, "/users/me", http.StatusMethodNotAllowed, "Method not allowed."},
		{"get token", http.MethodGet, "/users/token", http.StatusMethodNotAllowed, "Method not allowed."},
		{"create tag", http.MethodPost, "/tags", http.StatusMethodNotAllowed, "Method not allowed."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			req.Header.Set("Authorization", "Bearer token")
			req.Header.Set("X-Allow", "1")
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			require.Equal(t, tt.status, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			var body map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body["error"])
		})
	}
}

func TestRouter_MediaFiles(t *testing.T) {
	storage, err := media.NewStorage(t.TempDir(), "https://cdn.example.com/uploads/")
	require.NoError(t, err)
	require.NoError(t, storage.Save("recipe/0b6f1c1e-other-users-image.png", []byte("png-bytes")))

	rt := testRoutes()
	rt.mediaPath = "/uploads/"
	rt.media = storage.Handler()
	router := newRouter(rt)

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"stored file", "/uploads/recipe/0b6f1c1e-other-users-image.png", http.StatusOK},
		{"directory listing", "/uploads/recipe/", http.StatusNotFound},
		{"directory without slash", "/uploads/recipe", http.StatusNotFound},
		{"media root", "/uploads/", http.StatusNotFound},
		{"default prefix not mounted", "/media/recipe/0b6f1c1e-other-users-image.png", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.status, rr.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "png-bytes", rr.Body.String())
			} else {
				assert.NotContains(t, rr.Body.String(), "other-users-image")
			}
		})
	}
}
