package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"platcheck/internal/logging"
	"platcheck/pkg/adapters/memory"
	"platcheck/pkg/domain"
)

func newTestHandler(t *testing.T, summary *domain.Summary) (http.Handler, *memory.FailureStore) {
	t.Helper()
	store := memory.NewFailureStore()
	handler := NewHandler(store, func() *domain.Summary { return summary }, logging.NewNop())
	return handler, store
}

func TestGetHealthz(t *testing.T) {
	handler, _ := newTestHandler(t, nil)

	req, _ := http.NewRequest("GET", "/healthz", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Equal(t, "ok", resp["status"])
}

func TestGetSummary(t *testing.T) {
	t.Run("NoRunYet", func(t *testing.T) {
		handler, _ := newTestHandler(t, nil)

		req, _ := http.NewRequest("GET", "/summary", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("AfterRun", func(t *testing.T) {
		handler, _ := newTestHandler(t, &domain.Summary{
			Status: domain.StatusPassed,
			Trials: 2000,
			Seed:   42,
		})

		req, _ := http.NewRequest("GET", "/summary", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp domain.Summary
		err := json.Unmarshal(rr.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusPassed, resp.Status)
		assert.Equal(t, 2000, resp.Trials)
	})
}

func TestFailureEndpoints(t *testing.T) {
	handler, store := newTestHandler(t, nil)

	failure := &domain.Failure{
		ID:        "f-1",
		Candidate: "x86_64-darwin-20",
		Shrunk:    "darwin",
		FoundAt:   time.Now().UTC(),
	}
	assert.NoError(t, store.Save(context.Background(), failure))

	t.Run("List", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/failures", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp []*domain.Failure
		err := json.Unmarshal(rr.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "f-1", resp[0].ID)
	})

	t.Run("Get", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/failures/f-1", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp domain.Failure
		err := json.Unmarshal(rr.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.Equal(t, "darwin", resp.Shrunk)
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/failures/missing", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Delete", func(t *testing.T) {
		req, _ := http.NewRequest("DELETE", "/failures/f-1", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)

		_, err := store.Load(context.Background(), "f-1")
		assert.ErrorIs(t, err, domain.ErrFailureNotFound)
	})
}
