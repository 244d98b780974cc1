package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbocloud/ai-inventory-sub000/internal/api"
	"github.com/tbocloud/ai-inventory-sub000/internal/domain"
	"github.com/tbocloud/ai-inventory-sub000/internal/planner"
	"github.com/tbocloud/ai-inventory-sub000/internal/repository/memory"
	"github.com/tbocloud/ai-inventory-sub000/internal/service"
	"github.com/tbocloud/ai-inventory-sub000/internal/session"
)

func newTestRouter(t *testing.T) (*gin.Engine, *memory.OrderRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	forecasts := memory.NewForecastRepository()
	suppliers := memory.NewSupplierRepository()
	orders := memory.NewOrderRepository()
	sessions := session.NewMemoryStore(time.Minute)

	forecasts.Add(
		domain.ForecastRecord{
			ItemCode:          "WIDGET-1",
			ItemName:          "Widget",
			Company:           "Acme",
			PredictedQty:      90,
			ConfidenceScore:   85,
			Movement:          domain.MovementFast,
			RiskScore:         40,
			CurrentStock:      5,
			ReorderLevel:      20,
			LeadTimeDays:      7,
			PreferredSupplier: "Supplier A",
		},
		domain.ForecastRecord{
			ItemCode:          "WIDGET-2",
			ItemName:          "Widget Two",
			Company:           "Acme",
			PredictedQty:      45,
			ConfidenceScore:   70,
			Movement:          domain.MovementSlow,
			RiskScore:         20,
			CurrentStock:      12,
			ReorderLevel:      15,
			LeadTimeDays:      14,
			PreferredSupplier: "Supplier B",
		},
	)

	svc := service.NewProcurementService(forecasts, suppliers, orders, sessions, planner.DefaultPolicy())

	return api.NewRouter(svc, nil), orders
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestPreviewCommitRoundTrip(t *testing.T) {
	router, orders := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/procurement/preview", gin.H{
		"company":           "Acme",
		"min_confidence":    50,
		"group_by_supplier": true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("preview status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var preview domain.PreviewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &preview); err != nil {
		t.Fatalf("decode preview: %v", err)
	}
	if !preview.Success || preview.SessionToken == "" {
		t.Fatalf("unexpected preview: %+v", preview)
	}
	if len(preview.Items) != 2 {
		t.Fatalf("preview items = %d, want 2", len(preview.Items))
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/procurement/commit", gin.H{
		"session_token": preview.SessionToken,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("commit status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var commit domain.CommitResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &commit); err != nil {
		t.Fatalf("decode commit: %v", err)
	}
	if !commit.Success {
		t.Fatalf("commit not successful: %+v", commit)
	}
	if len(commit.CreatedOrders) != 2 {
		t.Errorf("created orders = %d, want 2", len(commit.CreatedOrders))
	}
	if orders.OrderCount() != 2 {
		t.Errorf("persisted orders = %d, want 2", orders.OrderCount())
	}

	// Replaying the same token must not create more orders.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/procurement/commit", gin.H{
		"session_token": preview.SessionToken,
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("second commit status = %d, want 409", rec.Code)
	}
	if orders.OrderCount() != 2 {
		t.Errorf("replayed commit changed order count to %d", orders.OrderCount())
	}
}

func TestPreviewValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/procurement/preview", gin.H{
		"min_confidence": 50,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing company status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/procurement/preview", gin.H{
		"company":        "Acme",
		"min_confidence": 250,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("out-of-range confidence status = %d, want 400", rec.Code)
	}
}

func TestCommitUnknownToken(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/procurement/commit", gin.H{
		"session_token": "not-a-session",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestCancelSession(t *testing.T) {
	router, orders := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/procurement/preview", gin.H{
		"company": "Acme",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("preview status = %d", rec.Code)
	}

	var preview domain.PreviewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &preview); err != nil {
		t.Fatalf("decode preview: %v", err)
	}

	path := fmt.Sprintf("/api/v1/procurement/sessions/%s", preview.SessionToken)
	rec = doJSON(t, router, http.MethodDelete, path, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("cancel status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodDelete, path, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second cancel status = %d, want 404", rec.Code)
	}

	if orders.OrderCount() != 0 {
		t.Errorf("cancelled preview created %d orders", orders.OrderCount())
	}
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d", rec.Code)
	}
}
