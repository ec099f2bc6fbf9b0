// internal/api/router.go
package api

import (
	"fmt"
	"net/http"

	"github.com/crunchvision/boxstylemcp/internal/config"
	"github.com/crunchvision/boxstylemcp/internal/di"
	"github.com/crunchvision/boxstylemcp/internal/services"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures the HTTP routes. Services come from the container
// only; the router never creates its own instances.
func SetupRouter() (*gin.Engine, error) {
	cfg := config.GetCurrentConfig()

	container := di.GetContainer()

	catalogService, ok := container.Get("catalog").(*services.CatalogService)
	if !ok {
		return nil, fmt.Errorf("catalog service not initialized")
	}

	promptService, ok := container.Get("prompt").(*services.PromptService)
	if !ok {
		return nil, fmt.Errorf("prompt service not initialized")
	}

	skeletonStore, ok := container.Get("skeletons").(*services.SkeletonStore)
	if !ok {
		return nil, fmt.Errorf("skeleton store not initialized")
	}

	handler := NewHandler(catalogService, promptService, skeletonStore)

	if !cfg.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(corsMiddleware())
	r.Use(RequestIDMiddleware())
	r.Use(MetricsMiddleware())

	// WebSocket variant streaming
	r.GET("/ws/variants", handler.VariantStream)

	api := r.Group("/api")
	api.Use(DefaultRateLimit())
	{
		api.GET("/health", handler.HealthCheck)

		api.POST("/parse", handler.ParseText)
		api.POST("/transform", handler.TransformText)
		api.POST("/variants", VariantRateLimit(), handler.GenerateVariants)

		categoriesGroup := api.Group("/categories")
		{
			categoriesGroup.GET("", handler.GetCategories)
			categoriesGroup.POST("/suggest", handler.SuggestCategory)
			categoriesGroup.GET("/:name/rules", handler.GetCategoryRules)
			categoriesGroup.GET("/:name/intention", handler.GetCategoryIntention)
		}

		skeletonsGroup := api.Group("/skeletons")
		{
			skeletonsGroup.POST("", handler.CreateSkeleton)
			skeletonsGroup.PUT("/:id/sections/:component", handler.RefineSkeleton)
		}

		api.GET("/catalog/metadata", handler.GetCatalogMetadata)
		api.GET("/metrics", handler.GetMetrics)
	}

	return r, nil
}

// corsMiddleware implements cross-origin resource sharing
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
