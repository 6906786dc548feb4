package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/recipe-app-api/internal/middlewares"
	"github.com/sbilibin2017/recipe-app-api/internal/models"
)

// serve routes a single request through chi so URL params resolve.
// A non-nil userID is placed in the context as the auth middleware would.
func serve(h http.HandlerFunc, method, pattern, target string, body io.Reader, userID uuid.UUID) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Method(method, pattern, h)

	req := httptest.NewRequest(method, target, body)
	if userID != uuid.Nil {
		req = req.WithContext(middlewares.WithUserID(req.Context(), userID))
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func ptr[T any](v T) *T { return &v }
