// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mcampagna/riordino/internal/api/handlers"
	"github.com/mcampagna/riordino/internal/api/middleware"
	"github.com/mcampagna/riordino/internal/config"
	"github.com/mcampagna/riordino/internal/service"
)

func NewRouter(reorderService *service.ReorderService, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(
		middleware.Logger(),
		middleware.Recovery(),
	)

	corsConfig := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if origins, allowAll := normalizeAllowedOrigins(cfg.Server.AllowedOrigins); allowAll {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	} else if len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	}
	router.Use(cors.New(corsConfig))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1
	v1 := router.Group("/api/v1")
	{
		reorderHandler := handlers.NewReorderHandler(reorderService, cfg)
		reorderGroup := v1.Group("/reorder")
		{
			reorderGroup.POST("/compute", reorderHandler.Compute)
			reorderGroup.POST("/vendors/template", reorderHandler.VendorTemplate)
			reorderGroup.GET("/downloads/:name", reorderHandler.Download)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		for _, part := range strings.Split(origin, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
