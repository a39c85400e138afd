// README: HTTP router registration.
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"deliveryeta/internal/http/handlers"
	"deliveryeta/internal/http/middleware"
	"deliveryeta/internal/metrics"
)

func NewRouter(s *Server) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Recovery(s.log),
		middleware.Logging(s.log),
		middleware.Metrics(),
		middleware.CORS(s.corsOrigins),
	)

	estimateHandler := handlers.NewEstimateHandler(s.estimator)
	r.POST("/api/estimate", estimateHandler.Estimate)
	r.GET("/api/model", estimateHandler.Model)

	if s.quotes != nil {
		quoteHandler := handlers.NewQuoteHandler(s.quotes)
		r.GET("/api/quotes", quoteHandler.List)
		r.GET("/api/quotes/:id", quoteHandler.Get)
	}

	healthHandler := handlers.NewHealthHandler(s.checks)
	r.GET("/health", healthHandler.Health)

	metrics.RegisterDefault()
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	return r
}
