package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/killallgit/converter-api/api/convert"
	"github.com/killallgit/converter-api/api/docs"
	"github.com/killallgit/converter-api/api/health"
	"github.com/killallgit/converter-api/api/status"
	"github.com/killallgit/converter-api/api/types"
	"github.com/killallgit/converter-api/api/version"
	_ "github.com/killallgit/converter-api/docs/swagger"
	"github.com/killallgit/converter-api/pkg/config"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if deps == nil {
		deps = &types.Dependencies{}
	}

	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)
	if cfg.Features.EnableDocsPage {
		docs.RegisterRoutes(engine, deps, cfg.Features.EnableSwagger)
	}

	// Register Swagger documentation route
	if cfg.Features.EnableSwagger {
		engine.GET("/docs", func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
		})
		docsGroup := engine.Group("/docs")
		docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	apiGroup := engine.Group("/api")
	status.RegisterRoutes(apiGroup, deps)

	// Conversion is the only expensive route: cap the body and admission rate
	convertGroup := apiGroup.Group("")
	convertGroup.Use(RequestSizeLimit())
	if cfg.RateLimiting.Enabled && cfg.RateLimiting.ConvertRPS > 0 {
		convertGroup.Use(RateLimit(cfg.RateLimiting.ConvertRPS, cfg.RateLimiting.ConvertBurst))
	}
	convert.RegisterRoutes(convertGroup, deps, cfg.Upload.MaxMemory)

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusNotFound, "Not Found")
	}
}
