package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/statement-importer/pkg/interceptors"
	"github.com/FACorreiaa/statement-importer/pkg/interceptors/authtest"
	"github.com/FACorreiaa/statement-importer/pkg/metrics"
)

type healthFunc func(context.Context) error

func (f healthFunc) Health(ctx context.Context) error { return f(ctx) }

var routerSecret = []byte("router-secret")

func testRouter(health error) http.Handler {
	tokens := interceptors.NewTokenVerifier(routerSecret)
	ok := func(w http.ResponseWriter, r *http.Request) {
		userID, _ := interceptors.GetUserIDFromContext(r.Context())
		_, _ = w.Write([]byte(r.Method + " " + userID))
	}
	return NewRouter(RouterDeps{
		AllowedOrigins:     []string{"https://app.example"},
		RateLimitPerSecond: 100,
		RateLimitBurst:     100,
		Tokens:             tokens,
		Health:             healthFunc(func(context.Context) error { return health }),
		Me:                 ok,
		ImportPDF:          ok,
		Metrics:            metrics.New().Handler(),
	})
}

func TestRouter_Health(t *testing.T) {
	h := testRouter(nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	h = testRouter(errors.New("db down"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_APIRequiresToken(t *testing.T) {
	h := testRouter(nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/expenses/import/pdf", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := authtest.Sign(routerSecret, "user-1", time.Minute)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "GET user-1", rec.Body.String())
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := testRouter(nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/expenses/import/pdf", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Metrics(t *testing.T) {
	h := testRouter(nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "statement_import_duration_seconds")
}
