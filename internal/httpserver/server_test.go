package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/toolshelf/internal/catalog"
	"github.com/MrSnakeDoc/toolshelf/internal/domain"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/mw"
	"github.com/MrSnakeDoc/toolshelf/internal/logger"
	"github.com/MrSnakeDoc/toolshelf/internal/metrics"
	"github.com/MrSnakeDoc/toolshelf/internal/store/memory"
)

type testServer struct {
	handler  http.Handler
	backend  *memory.Backend
	registry *prometheus.Registry
}

func newTestServer(t *testing.T, seed ...domain.Tool) *testServer {
	t.Helper()
	backend := memory.New(seed...)
	registry := prometheus.NewRegistry()
	m := metrics.NewPrometheus(registry)
	svc := catalog.NewService(backend, logger.NewNop(), catalog.WithObserver(m))

	h := NewRouter(deps.Deps{
		Logger:         logger.NewNop(),
		StartTime:      time.Now(),
		Version:        "test",
		Catalog:        svc,
		BackendName:    backend.Name(),
		Metrics:        m,
		Gatherer:       registry,
		RequestTimeout: 5 * time.Second,
		CORSOrigins:    []string{"*"},
	})
	return &testServer{handler: h, backend: backend, registry: registry}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestCreateAppliesDefaults(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/tools",
		`{"name":"Alpha","url":"https://a.example","shortDescription":"desc"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	got := decode[map[string]any](t, rec)
	id, _ := got["id"].(string)
	assert.Len(t, id, catalog.IDLength)
	delete(got, "id")

	assert.Equal(t, map[string]any{
		"name":             "Alpha",
		"url":              "https://a.example",
		"shortDescription": "desc",
		"category":         "Other",
		"pricing":          "unknown",
		"tags":             []any{},
		"featured":         false,
	}, got)

	list := decode[[]domain.Tool](t, s.do(t, http.MethodGet, "/api/tools", ""))
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
}

func TestCreateMapsWireNames(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/tools", `{
		"name":"Beta","url":"https://b.example","shortDescription":"d",
		"mainCategory":"coding-development","pricing":"free",
		"tags":["go"],"isFeatured":1,"language":"English"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	tool := decode[domain.Tool](t, rec)
	assert.Equal(t, "coding-development", tool.Category)
	assert.Equal(t, "free", tool.Pricing)
	assert.Equal(t, []string{"go"}, tool.Tags)
	assert.True(t, tool.Featured)
	assert.Equal(t, "English", tool.Language)
}

func TestCreateNewestFirst(t *testing.T) {
	s := newTestServer(t)
	for _, name := range []string{"first", "second"} {
		rec := s.do(t, http.MethodPost, "/api/tools",
			`{"name":"`+name+`","url":"https://x","shortDescription":"d"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	list := decode[[]domain.Tool](t, s.do(t, http.MethodGet, "/api/tools", ""))
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Name)
	assert.Equal(t, "first", list[1].Name)
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
		wantMsg  string
	}{
		{"missing name", `{"url":"https://x","shortDescription":"d"}`, http.StatusBadRequest, "Missing required fields"},
		{"missing url", `{"name":"x","shortDescription":"d"}`, http.StatusBadRequest, "Missing required fields"},
		{"missing description", `{"name":"x","url":"https://x"}`, http.StatusBadRequest, "Missing required fields"},
		{"non-string name", `{"name":5,"url":"https://x","shortDescription":"d"}`, http.StatusBadRequest, "Missing required fields"},
		{"empty body", ``, http.StatusBadRequest, "Missing required fields"},
		{"malformed json", `{"name":`, http.StatusBadRequest, "Invalid JSON body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, domain.Tool{ID: "keep", Name: "Keep"})

			rec := s.do(t, http.MethodPost, "/api/tools", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantMsg, decode[map[string]string](t, rec)["error"])
			assert.Len(t, s.backend.Snapshot(), 1)
			assert.Zero(t, s.backend.Saves())
		})
	}
}

func TestGetUnknown(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/tools/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Tool not found"}`, rec.Body.String())
}

func TestCreateThenGet(t *testing.T) {
	s := newTestServer(t)

	created := decode[domain.Tool](t, s.do(t, http.MethodPost, "/api/tools",
		`{"name":"A","url":"https://a","shortDescription":"d","tags":["x","y"]}`))

	rec := s.do(t, http.MethodGet, "/api/tools/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[domain.Tool](t, rec))
}

func TestUpdatePartial(t *testing.T) {
	s := newTestServer(t, domain.Tool{
		ID: "t1", Name: "Alpha", URL: "https://a", ShortDescription: "d",
		Category: "Other", Pricing: "unknown", Tags: []string{"keep"},
	})

	rec := s.do(t, http.MethodPut, "/api/tools/t1",
		`{"pricing":"free","featured":true,"tags":"oops","category":7,"id":"hijack"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[domain.Tool](t, rec)
	assert.Equal(t, "t1", got.ID)
	assert.Equal(t, "free", got.Pricing)
	assert.True(t, got.Featured)
	assert.Equal(t, []string{"keep"}, got.Tags)
	assert.Equal(t, "Other", got.Category)
	assert.Equal(t, "Alpha", got.Name)
}

func TestUpdateUnknown(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPut, "/api/tools/nope", `{"name":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Tool not found"}`, rec.Body.String())
}

func TestDeleteFlow(t *testing.T) {
	s := newTestServer(t, domain.Tool{ID: "t1"})

	rec := s.do(t, http.MethodDelete, "/api/tools/t1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/tools/t1", "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/api/tools/t1", "").Code)
}

func TestListFilters(t *testing.T) {
	s := newTestServer(t,
		domain.Tool{ID: "1", Category: "coding-development", Pricing: "free", Featured: true},
		domain.Tool{ID: "2", Name: "Alphabet", Category: "coding-development", Pricing: "paid"},
		domain.Tool{ID: "3", Category: "music-audio", Pricing: "free", Featured: true},
	)

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"1", "2", "3"}},
		{"?category=all&pricing=all", []string{"1", "2", "3"}},
		{"?category=coding-development", []string{"1", "2"}},
		{"?featured=true", []string{"1", "3"}},
		{"?featured=1", []string{"1", "2", "3"}},
		{"?featuredOnly=true", []string{"1", "3"}},
		{"?q=ALPHA", []string{"2"}},
		{"?category=coding-development&featured=true", []string{"1"}},
		{"?pricing=free&category=music-audio", []string{"3"}},
		{"?pricing=contact", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := s.do(t, http.MethodGet, "/api/tools"+tt.query, "")
			require.Equal(t, http.StatusOK, rec.Code)

			ids := []string{}
			for _, tool := range decode[[]domain.Tool](t, rec) {
				ids = append(ids, tool.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestStorageFailureIsGeneric500(t *testing.T) {
	s := newTestServer(t, domain.Tool{ID: "t1"})
	s.backend.FailLoad(errors.New("permission denied: /secret/path"))

	tests := []struct {
		method, path, body, msg string
	}{
		{http.MethodGet, "/api/tools", "", "Failed to read tools"},
		{http.MethodGet, "/api/tools/t1", "", "Failed to read tool"},
		{http.MethodPost, "/api/tools", `{"name":"a","url":"u","shortDescription":"d"}`, "Failed to create tool"},
		{http.MethodPut, "/api/tools/t1", `{"name":"a"}`, "Failed to update tool"},
		{http.MethodDelete, "/api/tools/t1", "", "Failed to delete tool"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := s.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.JSONEq(t, `{"error":"`+tt.msg+`"}`, rec.Body.String())
		})
	}
}

func TestBodyTooLarge(t *testing.T) {
	s := newTestServer(t)
	big := `{"name":"` + strings.Repeat("a", 2<<20) + `"}`

	rec := s.do(t, http.MethodPost, "/api/tools", big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestOptions(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/options", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[map[string][]string](t, rec)
	assert.Equal(t, domain.Categories, got["categories"])
	assert.Equal(t, domain.PricingModels, got["pricing"])
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/tools", nil)
	req.Header.Set("Origin", "https://somewhere.example")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestProbes(t *testing.T) {
	s := newTestServer(t, domain.Tool{ID: "a"})

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/healthz", "").Code)
	assert.JSONEq(t, `{"ready":true}`, s.do(t, http.MethodGet, "/readyz", "").Body.String())

	infra := decode[map[string]any](t, s.do(t, http.MethodGet, "/infra", ""))
	assert.Equal(t, "operational", infra["mode"])

	s.backend.FailLoad(errors.New("gone"))
	assert.Equal(t, http.StatusServiceUnavailable, s.do(t, http.MethodGet, "/readyz", "").Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/healthz", "").Code)

	infra = decode[map[string]any](t, s.do(t, http.MethodGet, "/infra", ""))
	assert.Equal(t, "critical", infra["mode"])
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, domain.Tool{ID: "a"})
	s.do(t, http.MethodGet, "/api/tools/a", "")

	rec := s.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `toolshelf_http_requests_total{method="GET",route="/api/tools/{id}",status="200"} 1`)
	assert.Contains(t, body, "toolshelf_catalog_records 1")
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())
}

func TestOperatorRoutesRespectCIDRs(t *testing.T) {
	backend := memory.New()
	registry := prometheus.NewRegistry()
	h := NewRouter(deps.Deps{
		Logger:       logger.NewNop(),
		StartTime:    time.Now(),
		Catalog:      catalog.NewService(backend, logger.NewNop()),
		BackendName:  backend.Name(),
		Gatherer:     registry,
		CORSOrigins:  []string{"*"},
		MetricsCIDRS: []string{"10.0.0.0/8"},
	})

	for _, tc := range []struct {
		path string
		want int
	}{
		{"/healthz", http.StatusOK},
		{"/readyz", http.StatusForbidden},
		{"/infra", http.StatusForbidden},
		{"/metrics", http.StatusForbidden},
		{"/api/tools", http.StatusOK},
	} {
		t.Run(tc.path, func(t *testing.T) {
			// httptest requests come from 192.0.2.1
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.RemoteAddr = "10.1.2.3:4567"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWriteLimitOnlyThrottlesMutations(t *testing.T) {
	backend := memory.New()
	h := NewRouter(deps.Deps{
		Logger:      logger.NewNop(),
		StartTime:   time.Now(),
		Catalog:     catalog.NewService(backend, logger.NewNop()),
		BackendName: backend.Name(),
		CORSOrigins: []string{"*"},
		WriteLimit:  mw.WriteLimitConfig{Burst: 1, RefillPerIPPerMin: 1},
	})
	s := &testServer{handler: h, backend: backend}

	body := `{"name":"Alpha","url":"https://a.example","shortDescription":"desc"}`
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/tools", body).Code)

	rec := s.do(t, http.MethodPost, "/api/tools", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Len(t, backend.Snapshot(), 1)

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/tools", "").Code)
}
