// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"deliveryeta/internal/modules/estimator"
	"deliveryeta/internal/modules/quote"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Success: false, Error: msg})
}

func writeEstimateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, estimator.ErrInvalidRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, estimator.ErrModelUnavailable):
		writeError(c, http.StatusNotFound, "no model loaded")
	default:
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeQuoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, quote.ErrBadRequest):
		writeError(c, http.StatusBadRequest, "invalid quote id")
	case errors.Is(err, quote.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
