package main

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// routes collects the handlers and middleware the router mounts.
type routes struct {
	register     http.HandlerFunc
	token        http.HandlerFunc
	getProfile   http.HandlerFunc
	patchProfile http.HandlerFunc
	putProfile   http.HandlerFunc
	listRecipes  http.HandlerFunc
	createRecipe http.HandlerFunc
	getRecipe    http.HandlerFunc
	patchRecipe  http.HandlerFunc
	putRecipe    http.HandlerFunc
	deleteRecipe http.HandlerFunc
	uploadImage  http.HandlerFunc
	listTags     http.HandlerFunc
	updateTag    http.HandlerFunc
	deleteTag    http.HandlerFunc

	auth      func(http.Handler) http.Handler
	rateLimit func(http.Handler) http.Handler
	logging   func(http.Handler) http.Handler

	mediaPath string
	media     http.Handler
	swagger   http.HandlerFunc
}

func newRouter(rt routes) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(rt.logging)

	r.NotFound(jsonStatus(http.StatusNotFound, "Not found."))
	r.MethodNotAllowed(jsonStatus(http.StatusMethodNotAllowed, "Method not allowed."))

	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(rt.rateLimit)
		r.Post("/users", rt.register)
		r.Post("/users/token", rt.token)
	})

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(rt.auth)

		r.Get("/users/me", rt.getProfile)
		r.Patch("/users/me", rt.patchProfile)
		r.Put("/users/me", rt.putProfile)

		r.Get("/recipes", rt.listRecipes)
		r.Post("/recipes", rt.createRecipe)
		r.Get("/recipes/{id}", rt.getRecipe)
		r.Patch("/recipes/{id}", rt.patchRecipe)
		r.Put("/recipes/{id}", rt.putRecipe)
		r.Delete("/recipes/{id}", rt.deleteRecipe)
		r.Post("/recipes/{id}/upload-image", rt.uploadImage)

		r.Get("/tags", rt.listTags)
		r.Patch("/tags/{id}", rt.updateTag)
		r.Put("/tags/{id}", rt.updateTag)
		r.Delete("/tags/{id}", rt.deleteTag)
	})

	r.Get(rt.mediaPath+"*", http.StripPrefix(rt.mediaPath, rt.media).ServeHTTP)
	r.Get("/swagger/*", rt.swagger)

	return r
}

func jsonStatus(status int, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
	}
}
