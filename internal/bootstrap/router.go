package bootstrap

import (
	httpapi "github.com/GoSim-25-26J-441/policy-claims-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/genai"
	claimshttp "github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/http"
	"github.com/GoSim-25-26J-441/policy-claims-backend/internal/claims/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	Init           service.Initialization
	Pipeline       *service.Pipeline
	Metrics        *genai.Metrics
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(dep.AllowedOrigins)))
	r.Use(middleware.RequestIDMiddleware())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Init, dep.Metrics)
	healthHandler.RegisterRoutes(r)

	claimsHandler := claimshttp.New(dep.Init, dep.Pipeline)
	claimsHandler.Register(r)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, middleware.RequestIDHeader)
	cfg.ExposeHeaders = []string{middleware.RequestIDHeader}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
