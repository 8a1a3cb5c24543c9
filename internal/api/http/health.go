package http

import (
	"net/http"
	"time"

	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/genai"
	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/service"
	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status            string    `json:"status"`
	Timestamp         time.Time `json:"timestamp"`
	Service           string    `json:"service"`
	Version           string    `json:"version"`
	Corpus            string    `json:"corpus"`
	Documents         int       `json:"documents"`
	ModelCalls        int64     `json:"model_calls"`
	ModelErrors       int64     `json:"model_errors"`
	ModelAvgLatencyMs float64   `json:"model_avg_latency_ms"`
}

type HealthHandler struct {
	serviceName string
	version     string
	init        service.Initialization
	metrics     *genai.Metrics
}

func NewHealthHandler(serviceName, version string, state service.Initialization, metrics *genai.Metrics) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		init:        state,
		metrics:     metrics,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status := "healthy"
	corpusStatus := "failed"
	documents := 0

	switch state := h.init.(type) {
	case service.Ready:
		documents = state.Corpus.Len()
		corpusStatus = "loaded"
		if documents == 0 {
			corpusStatus = "empty"
			status = "degraded"
		}
	default:
		status = "degraded"
	}

	snap := h.metrics.Snapshot()
	c.JSON(http.StatusOK, HealthResponse{
		Status:            status,
		Timestamp:         time.Now().UTC(),
		Service:           h.serviceName,
		Version:           h.version,
		Corpus:            corpusStatus,
		Documents:         documents,
		ModelCalls:        snap.Calls,
		ModelErrors:       snap.Errors,
		ModelAvgLatencyMs: snap.AverageLatencyMs(),
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
