package routes

import (
	"net/http"

	"github.com/sahithdaddla/veera20-Job-Applications/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the API surface and the static uploads directory.
func RegisterRoutes(r *gin.Engine, h *handlers.AppHandlers, uploadsDir string) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Stored blobs are exposed read-only under their generated names.
	r.Static("/uploads", uploadsDir)

	api := r.Group("/api")
	{
		h.ApplicationHandler.RegisterRoutes(api)
		h.OfferHandler.RegisterRoutes(api)
	}
}
