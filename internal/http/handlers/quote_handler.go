// README: Quote handlers; read back recorded estimates.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"deliveryeta/internal/modules/quote"
	"deliveryeta/internal/types"
)

type QuoteHandler struct {
	quotes *quote.Service
}

func NewQuoteHandler(svc *quote.Service) *QuoteHandler {
	return &QuoteHandler{quotes: svc}
}

type quoteResp struct {
	ID                  types.ID `json:"id"`
	Latitude            float64  `json:"latitude"`
	Longitude           float64  `json:"longitude"`
	Municipality        string   `json:"municipality"`
	Barangay            string   `json:"barangay"`
	PostalCode          string   `json:"postal_code"`
	TimeOfOrder         int      `json:"time_of_order"`
	DayOfWeek           int      `json:"day_of_week"`
	OrderSize           int      `json:"order_size"`
	DistanceKm          float64  `json:"distance_km"`
	DeliveryTimeMinutes float64  `json:"delivery_time_minutes"`
	DeliveryTimeHours   float64  `json:"delivery_time_hours"`
	ShippingFee         float64  `json:"shipping_fee"`
	Currency            string   `json:"currency"`
	Source              string   `json:"source"`
	ModelType           string   `json:"model_type,omitempty"`
	CreatedAt           string   `json:"created_at"`
}

func toQuoteResp(q *quote.Quote) quoteResp {
	return quoteResp{
		ID:                  q.ID,
		Latitude:            q.Destination.Lat,
		Longitude:           q.Destination.Lng,
		Municipality:        q.Municipality,
		Barangay:            q.Barangay,
		PostalCode:          q.PostalCode,
		TimeOfOrder:         q.TimeOfOrder,
		DayOfWeek:           q.DayOfWeek,
		OrderSize:           q.OrderSize,
		DistanceKm:          q.DistanceKm,
		DeliveryTimeMinutes: q.Minutes,
		DeliveryTimeHours:   q.Hours,
		ShippingFee:         q.Fee.Amount,
		Currency:            q.Fee.Currency,
		Source:              q.Source,
		ModelType:           q.ModelType,
		CreatedAt:           q.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Get handles GET /api/quotes/:id.
func (h *QuoteHandler) Get(c *gin.Context) {
	q, err := h.quotes.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeQuoteError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, toQuoteResp(q))
}

// List handles GET /api/quotes?limit=N.
func (h *QuoteHandler) List(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	qs, err := h.quotes.ListRecent(c.Request.Context(), limit)
	if err != nil {
		writeQuoteError(c, err)
		return
	}
	out := make([]quoteResp, 0, len(qs))
	for _, q := range qs {
		out = append(out, toQuoteResp(q))
	}
	writeJSON(c, http.StatusOK, map[string]any{"quotes": out})
}
