package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/corpus"
	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/domain"
	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/service"
	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/logger"
	"github.com/gin-gonic/gin"
)

const (
	msgNoQuery       = "No query provided."
	msgNoDocuments   = "No documents found. Please add PDF or DOCX files to the documents directory."
	msgInternalError = "An internal server error occurred. Please check the server logs for details."
)

// Index reports that the server is up
func (h *Handler) Index(c *gin.Context) {
	c.String(http.StatusOK, "The server is running. POST a claim query to /evaluate_query.")
}

// EvaluateQuery runs the claim pipeline for one query
func (h *Handler) EvaluateQuery(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.New(ctx)

	docs, ok := h.resolveCorpus(c)
	if !ok {
		return
	}

	var body EvaluateQueryRequest
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoQuery})
		return
	}

	resp, err := h.pipeline.Run(ctx, body.Query, docs)
	if err != nil {
		var fe *domain.FormatError
		if errors.As(err, &fe) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query format. " + fe.Error()})
			return
		}
		log.LogError("evaluate_query", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternalError})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// resolveCorpus resolves the startup state, writing the error response when no
// query can be served.
func (h *Handler) resolveCorpus(c *gin.Context) (*corpus.Corpus, bool) {
	switch state := h.init.(type) {
	case service.Ready:
		if state.Corpus.Empty() {
			c.JSON(http.StatusInternalServerError, gin.H{"error": msgNoDocuments})
			return nil, false
		}
		return state.Corpus, true
	case service.Failed:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Server failed to initialize resources. Details: " + state.Err.Error(),
		})
		return nil, false
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": domain.ErrNotInitialized.Error()})
		return nil, false
	}
}
