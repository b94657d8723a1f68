package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func TestWriteLimit(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	h := writeLimit(WriteLimitConfig{Burst: 2, RefillPerIPPerMin: 60}, clock.Now)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))

	do := func(method, remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, "/api/tools", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusNoContent, do(http.MethodPost, "10.0.0.1:1").Code)
	assert.Equal(t, http.StatusNoContent, do(http.MethodDelete, "10.0.0.1:1").Code)

	limited := do(http.MethodPut, "10.0.0.1:1")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "1", limited.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"Too many requests"}`, limited.Body.String())

	// reads and other clients are unaffected
	assert.Equal(t, http.StatusNoContent, do(http.MethodGet, "10.0.0.1:1").Code)
	assert.Equal(t, http.StatusNoContent, do(http.MethodPost, "10.0.0.2:1").Code)

	clock.t = clock.t.Add(time.Second)
	assert.Equal(t, http.StatusNoContent, do(http.MethodPost, "10.0.0.1:1").Code)
}

func TestWriteLimitDisabled(t *testing.T) {
	calls := 0
	h := WriteLimit(WriteLimitConfig{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	for i := 0; i < 50; i++ {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))
	}
	assert.Equal(t, 50, calls)
}
