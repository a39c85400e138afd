package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"deliveryeta/internal/config"
	httptransport "deliveryeta/internal/http"
	"deliveryeta/internal/modules/estimator"
	"deliveryeta/internal/modules/pricing"
)

func TestRunAll_AgainstFallbackServer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tariff := config.DefaultTariff()
	engine := estimator.NewEngine(tariff, estimator.NewLoader(nil), pricing.NewService(tariff), zap.NewNop())
	srv := httptest.NewServer(httptransport.NewServer(httptransport.ServerDeps{Estimator: engine}).Routes())
	defer srv.Close()

	r := NewRunner(Config{BaseURL: srv.URL, Concurrency: 2, Duration: 200 * time.Millisecond})
	results := r.RunAll(context.Background())

	byName := map[string]Result{}
	for _, res := range results {
		byName[res.Name] = res
	}
	assert.Equal(t, StatusSkip, byName["Env: Postgres connect"].Status)
	assert.Equal(t, StatusPass, byName["HTTP: health"].Status)
	assert.Equal(t, StatusPending, byName["HTTP: model metadata"].Status, "no model loaded")
	assert.Equal(t, StatusPass, byName["HTTP: estimate rejects bad hour"].Status)
	assert.Equal(t, StatusPass, byName["HTTP: Calauan estimate and fee"].Status, byName["HTTP: Calauan estimate and fee"].Note)
	assert.Equal(t, StatusPass, byName["Perf: estimate load across catalog"].Status)

	_, fail, _, _ := tally(results)
	assert.Zero(t, fail)
}

func TestHTTPCase_Statuses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()
	r := NewRunner(Config{})

	res := httpCase("teapot", http.MethodGet, srv.URL, nil, []int{418}, nil).Run(context.Background(), r)
	require.Equal(t, StatusPass, res.Status)
	res = httpCase("teapot", http.MethodGet, srv.URL, nil, []int{200}, []int{418}).Run(context.Background(), r)
	assert.Equal(t, StatusPending, res.Status)
	res = httpCase("teapot", http.MethodGet, srv.URL, nil, []int{200}, nil).Run(context.Background(), r)
	assert.Equal(t, StatusFail, res.Status)
}
