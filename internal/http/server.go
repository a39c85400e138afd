// README: API gateway; holds the services the routes delegate to.
package http

import (
	"net/http"

	"go.uber.org/zap"

	"deliveryeta/internal/http/handlers"
	"deliveryeta/internal/modules/quote"
)

type ServerDeps struct {
	Estimator   handlers.Estimator
	Quotes      *quote.Service // nil disables /api/quotes
	Checks      map[string]handlers.Check
	CORSOrigins []string
	Log         *zap.Logger
}

type Server struct {
	estimator   handlers.Estimator
	quotes      *quote.Service
	checks      map[string]handlers.Check
	corsOrigins []string
	log         *zap.Logger
}

func NewServer(deps ServerDeps) *Server {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		estimator:   deps.Estimator,
		quotes:      deps.Quotes,
		checks:      deps.Checks,
		corsOrigins: deps.CORSOrigins,
		log:         log.Named("http"),
	}
}

func (s *Server) Routes() http.Handler {
	return NewRouter(s)
}
