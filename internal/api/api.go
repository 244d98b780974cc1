// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/tbocloud/ai-inventory-sub000/internal/api/handlers"
	"github.com/tbocloud/ai-inventory-sub000/internal/api/middleware"
	"github.com/tbocloud/ai-inventory-sub000/internal/service"
)

func NewRouter(svc *service.ProcurementService, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Logger(),
		middleware.Recovery(),
	)

	corsConfig := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalized, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalized) > 0 {
			corsConfig.AllowOrigins = normalized
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	procurementHandler := handlers.NewProcurementHandler(svc)
	forecastHandler := handlers.NewForecastHandler(svc)

	procurementGroup := apiGroup.Group("/procurement")
	{
		procurementGroup.POST("/preview", procurementHandler.Preview)
		procurementGroup.POST("/commit", procurementHandler.Commit)
		procurementGroup.DELETE("/sessions/:token", procurementHandler.CancelSession)
		procurementGroup.GET("/suppliers/:item", procurementHandler.SupplierOptions)
	}

	apiGroup.GET("/forecasts", forecastHandler.List)

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
