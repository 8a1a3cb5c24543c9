package http

import (
	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/service"
)

// EvaluateQueryRequest is the body of POST /evaluate_query
type EvaluateQueryRequest struct {
	Query string `json:"query"`
}

// Handler serves claim evaluation requests
type Handler struct {
	init     service.Initialization
	pipeline *service.Pipeline
}

// New creates a Handler. state is consulted before every query.
func New(state service.Initialization, pipeline *service.Pipeline) *Handler {
	return &Handler{init: state, pipeline: pipeline}
}
