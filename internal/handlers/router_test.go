package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/evergreen-power/apiserver/internal/docstore"
	"github.com/evergreen-power/apiserver/internal/services"
	"github.com/evergreen-power/apiserver/internal/store"
	"github.com/evergreen-power/apiserver/types"
)

const testJWTSecret = "test-secret"

// newTestRouter wires the full route surface over an in-memory store seeded
// with the default user accounts and the given leads.
func newTestRouter(t *testing.T, seed []types.Lead) http.Handler {
	t.Helper()

	mem := docstore.NewMemoryStore()
	require.NoError(t, mem.SaveLeads(context.Background(), seed))

	leadRepo, err := store.NewLeadRepository(context.Background(), mem)
	require.NoError(t, err)
	userRepo, err := store.NewUserRepository(context.Background(), mem)
	require.NoError(t, err)

	authService := services.NewAuthService(userRepo)
	leadService := services.NewLeadService(leadRepo, userRepo)
	userService := services.NewUserService(userRepo)
	reportService := services.NewReportService(leadService)

	authHandler := NewAuthHandler(authService, testJWTSecret)

	router := chi.NewRouter()
	router.Get("/healthz", Healthz)
	router.Route("/auth", func(r chi.Router) {
		AuthRouter(r, authService, testJWTSecret)
	})
	router.Route("/leads", func(r chi.Router) {
		LeadRouter(r, leadService, authHandler.RequireAuth)
	})
	router.Route("/users", func(r chi.Router) {
		UserRouter(r, userService, authHandler.RequireAuth)
	})
	router.Route("/reports", func(r chi.Router) {
		ReportRouter(r, reportService, authHandler.RequireAuth)
	})
	return router
}

func login(t *testing.T, router http.Handler, username, password string) string {
	t.Helper()

	rec := doRequest(t, router, http.MethodPost, "/auth/login", "", LoginRequest{
		Username: username,
		Password: password,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func doRequest(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}
