package http

import "github.com/gin-gonic/gin"

// Register registers the claim routes
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/", h.Index)
	r.POST("/evaluate_query", h.EvaluateQuery)
}
