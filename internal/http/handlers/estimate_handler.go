// README: Estimate handlers; delivery time and fee for one destination, plus loaded model info.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"deliveryeta/internal/modules/artifact"
	"deliveryeta/internal/modules/estimator"
)

// Estimator is the part of *estimator.Engine the handlers call.
type Estimator interface {
	Estimate(ctx context.Context, req estimator.Request) (estimator.Estimate, error)
	Model(ctx context.Context) (artifact.Metadata, error)
}

type EstimateHandler struct {
	engine Estimator
}

func NewEstimateHandler(engine Estimator) *EstimateHandler {
	return &EstimateHandler{engine: engine}
}

type EstimateResp struct {
	Success             bool    `json:"success"`
	DeliveryTimeMinutes float64 `json:"delivery_time_minutes"`
	DeliveryTimeHours   float64 `json:"delivery_time_hours"`
	ShippingFee         float64 `json:"shipping_fee"`
}

// NewEstimateResp is the public response shape shared with etactl.
func NewEstimateResp(e estimator.Estimate) EstimateResp {
	return EstimateResp{
		Success:             true,
		DeliveryTimeMinutes: e.Minutes,
		DeliveryTimeHours:   e.Hours,
		ShippingFee:         e.Fee.Amount,
	}
}

// Estimate handles POST /api/estimate.
func (h *EstimateHandler) Estimate(c *gin.Context) {
	var req estimator.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	est, err := h.engine.Estimate(c.Request.Context(), req)
	if err != nil {
		writeEstimateError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, NewEstimateResp(est))
}

// Model handles GET /api/model.
func (h *EstimateHandler) Model(c *gin.Context) {
	meta, err := h.engine.Model(c.Request.Context())
	if err != nil {
		writeEstimateError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, meta)
}
