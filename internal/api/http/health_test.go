package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/corpus"
	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/genai"
	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveHealth(t *testing.T, handler *HealthHandler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	handler.RegisterRoutes(router)

	req, err := http.NewRequest(method, path, nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheck(t *testing.T) {
	docs := corpus.New(corpus.Document{Name: "a.pdf", Text: "x"}, corpus.Document{Name: "b.docx", Text: "y"})
	handler := NewHealthHandler("test-service", "1.0.0", service.Ready{Corpus: docs}, &genai.Metrics{})

	for _, path := range []string{"/health", "/healthz"} {
		rr := serveHealth(t, handler, http.MethodGet, path)
		require.Equal(t, http.StatusOK, rr.Code)

		var response HealthResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "test-service", response.Service)
		assert.Equal(t, "1.0.0", response.Version)
		assert.Equal(t, "loaded", response.Corpus)
		assert.Equal(t, 2, response.Documents)
	}
}

func TestHealthCheckDegraded(t *testing.T) {
	tests := []struct {
		name   string
		init   service.Initialization
		corpus string
	}{
		{"empty corpus", service.Ready{Corpus: corpus.New()}, "empty"},
		{"failed load", service.Failed{Err: errors.New("boom")}, "failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serveHealth(t, NewHealthHandler("svc", "1", tt.init, nil), http.MethodGet, "/health")
			require.Equal(t, http.StatusOK, rr.Code)

			var response HealthResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
			assert.Equal(t, "degraded", response.Status)
			assert.Equal(t, tt.corpus, response.Corpus)
		})
	}
}

func TestHealthCheckMethodNotAllowed(t *testing.T) {
	handler := NewHealthHandler("test-service", "1.0.0", service.Ready{Corpus: corpus.New()}, nil)

	rr := serveHealth(t, handler, http.MethodPost, "/health")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
