// internal/api/handlers/procurement_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/tbocloud/ai-inventory-sub000/internal/domain"
	"github.com/tbocloud/ai-inventory-sub000/internal/service"
)

var validate = validator.New()

type ProcurementHandler struct {
	svc *service.ProcurementService
}

func NewProcurementHandler(svc *service.ProcurementService) *ProcurementHandler {
	return &ProcurementHandler{svc: svc}
}

// Preview computes a purchase proposal and opens an editable session.
func (h *ProcurementHandler) Preview(c *gin.Context) {
	var req domain.PreviewRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Preview(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrDataSource) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "forecast data source unavailable", "details": err.Error()})
			return
		}
		log.Error().Err(err).Msg("preview failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute preview"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Commit consumes a previewed session and creates the orders.
func (h *ProcurementHandler) Commit(c *gin.Context) {
	var req domain.CommitRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Commit(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionConsumed):
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error":   "session already committed; orders were not created again",
			})
		case errors.Is(err, domain.ErrSessionExpired):
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error":   "session expired; run the preview again",
			})
		case errors.Is(err, domain.ErrSessionNotFound):
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error":   "unknown session token",
			})
		default:
			log.Error().Err(err).Msg("commit failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to commit orders"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CancelSession discards a previewed session.
func (h *ProcurementHandler) CancelSession(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session token is required"})
		return
	}

	if err := h.svc.Cancel(c.Request.Context(), token); err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionConsumed):
			c.JSON(http.StatusConflict, gin.H{"error": "session already committed"})
		case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrSessionExpired):
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		default:
			log.Error().Err(err).Msg("cancel failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel session"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "session cancelled"})
}

// SupplierOptions returns the alternative suppliers for an item, for manual
// override in the preview.
func (h *ProcurementHandler) SupplierOptions(c *gin.Context) {
	itemCode := c.Param("item")
	if itemCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item code is required"})
		return
	}

	options, err := h.svc.SupplierOptions(c.Request.Context(), itemCode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch supplier options"})
		return
	}

	c.JSON(http.StatusOK, options)
}

// bindAndValidate binds the JSON body and runs struct validation, writing
// a structured 400 payload on failure.
func bindAndValidate(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return false
	}

	if err := validate.StructCtx(c.Request.Context(), req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]gin.H, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, gin.H{"field": fe.Field(), "rule": fe.Tag()})
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fields})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": err.Error()})
		return false
	}

	return true
}
