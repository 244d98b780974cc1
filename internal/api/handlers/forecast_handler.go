// internal/api/handlers/forecast_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbocloud/ai-inventory-sub000/internal/domain"
	"github.com/tbocloud/ai-inventory-sub000/internal/service"
)

type ForecastHandler struct {
	svc *service.ProcurementService
}

func NewForecastHandler(svc *service.ProcurementService) *ForecastHandler {
	return &ForecastHandler{svc: svc}
}

// List returns forecast records matching the query filters.
func (h *ForecastHandler) List(c *gin.Context) {
	filter := domain.ForecastFilter{
		Company:         strings.TrimSpace(c.Query("company")),
		Territory:       strings.TrimSpace(c.Query("territory")),
		ItemCode:        strings.TrimSpace(c.Query("item_code")),
		Customer:        strings.TrimSpace(c.Query("customer")),
		MinConfidence:   parseNonNegativeFloat(c.Query("min_confidence")),
		MinPredictedQty: parseNonNegativeFloat(c.Query("min_predicted_qty")),
	}

	records, err := h.svc.ListForecasts(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, domain.ErrDataSource) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "forecast data source unavailable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch forecasts"})
		return
	}

	c.JSON(http.StatusOK, records)
}

func parseNonNegativeFloat(value string) float64 {
	if v, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil && v >= 0 {
		return v
	}

	return 0
}
