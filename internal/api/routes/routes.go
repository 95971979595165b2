// Package routes defines the HTTP routes of the docstore service.
package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/docstore/docstore-service/internal/api/handlers"
	"github.com/docstore/docstore-service/internal/api/middleware"
)

// BasePath is the prefix of every API route.
const BasePath = "/api/v1/docstore"

// Config holds the dependencies for setting up routes.
type Config struct {
	HealthHandler    *handlers.HealthHandler
	DocumentsHandler *handlers.DocumentsHandler
	Idempotency      *middleware.IdempotencyMiddleware
	CORS             middleware.CORSConfig
}

// Setup configures all routes on the Gin engine.
func Setup(r *gin.Engine, cfg *Config) {
	v1 := r.Group(BasePath)
	{
		v1.GET("/health", cfg.HealthHandler.Health)
		v1.GET("/ready", cfg.HealthHandler.Ready)
		v1.GET("/live", cfg.HealthHandler.Live)

		documents := v1.Group("/collections/:collection/documents")
		{
			insert := []gin.HandlerFunc{cfg.DocumentsHandler.InsertDocuments}
			if cfg.Idempotency != nil {
				insert = append([]gin.HandlerFunc{cfg.Idempotency.Handler()}, insert...)
			}
			documents.POST("", insert...)
			documents.GET("", cfg.DocumentsHandler.FindDocuments)

			documents.GET("/:id", cfg.DocumentsHandler.GetDocument)
			documents.DELETE("/:id", cfg.DocumentsHandler.DeleteDocument)

			documents.POST("/update", cfg.DocumentsHandler.UpdateDocuments)
			documents.POST("/find-one-and-update", cfg.DocumentsHandler.FindOneAndUpdate)
			documents.POST("/delete", cfg.DocumentsHandler.DeleteDocuments)
		}
	}

	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// SetupWithMiddleware sets up routes with common middleware.
func SetupWithMiddleware(r *gin.Engine, cfg *Config, loggingMw *middleware.LoggingMiddleware, errorMw *middleware.ErrorMiddleware) {
	r.Use(loggingMw.Logger())
	r.Use(errorMw.Recovery())
	r.Use(middleware.NewCORSMiddleware(cfg.CORS))

	r.HandleMethodNotAllowed = true
	r.NoRoute(middleware.NotFound())
	r.NoMethod(middleware.MethodNotAllowed())

	Setup(r, cfg)
}
