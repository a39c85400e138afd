// README: Bench cases; HTTP contract checks, backing store checks and an estimate load test.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"deliveryeta/internal/modules/location"
)

const (
	StatusPass    = "PASS"
	StatusFail    = "FAIL"
	StatusPending = "PENDING"
	StatusSkip    = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name  string
	Focus string
	Run   func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
			defer r.db.Close()
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
		defer r.redis.Close()
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))
	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}
	return results
}

// calauanOrder is the reference order: 10 items to the Calauan centroid on a Tuesday afternoon.
var calauanOrder = map[string]any{
	"latitude":      14.1494,
	"longitude":     121.3156,
	"municipality":  "Calauan",
	"barangay":      "San Isidro",
	"postal_code":   "4012",
	"order_size":    10,
	"time_of_order": 14,
	"day_of_week":   2,
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name:  "Env: Postgres connect",
			Focus: "quote log and model store reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: StatusSkip, Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name:  "Env: Redis connect",
			Focus: "estimate cache reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: StatusSkip, Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass}
			},
		},
		httpCase("HTTP: health", http.MethodGet, base+"/health", nil, []int{200}, nil),
		httpCase("HTTP: metrics", http.MethodGet, base+"/metrics", nil, []int{200}, nil),
		httpCase("HTTP: model metadata", http.MethodGet, base+"/api/model", nil, []int{200}, []int{404}),
		httpCase("HTTP: estimate rejects missing coordinates", http.MethodPost, base+"/api/estimate",
			map[string]any{"order_size": 2}, []int{400}, nil),
		httpCase("HTTP: estimate rejects bad hour", http.MethodPost, base+"/api/estimate",
			map[string]any{"latitude": 14.1, "longitude": 121.3, "time_of_order": 24}, []int{400}, nil),
		{
			Name:  "HTTP: Calauan estimate and fee",
			Focus: "fee = 50 + minutes*0.5, minutes >= 20",
			Run: func(ctx context.Context, r *Runner) Result {
				var body struct {
					Success bool    `json:"success"`
					Minutes float64 `json:"delivery_time_minutes"`
					Hours   float64 `json:"delivery_time_hours"`
					Fee     float64 `json:"shipping_fee"`
				}
				start := time.Now()
				status, err := r.postJSON(ctx, base+"/api/estimate", calauanOrder, &body)
				latency := time.Since(start)
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				if status != http.StatusOK || !body.Success {
					return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("status=%d", status)}
				}
				wantFee := math.Round((50+body.Minutes*0.5)*100) / 100
				if body.Minutes < 20 || math.Abs(body.Fee-wantFee) > 1e-9 {
					return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("minutes=%.2f fee=%.2f", body.Minutes, body.Fee)}
				}
				return Result{Status: StatusPass, Latency: latency, Note: fmt.Sprintf("minutes=%.2f fee=%.2f", body.Minutes, body.Fee)}
			},
		},
		{
			Name:  "DB: quotes recorded",
			Focus: "quote log receives estimates",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: StatusSkip, Note: "db not configured"}
				}
				var n int64
				if err := r.db.QueryRow(ctx, `SELECT count(*) FROM quotes`).Scan(&n); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				if n == 0 {
					return Result{Status: StatusFail, Note: "no quotes after estimate"}
				}
				return Result{Status: StatusPass, Note: fmt.Sprintf("quotes=%d", n)}
			},
		},
		{
			Name:  "Perf: estimate load across catalog",
			Focus: "throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, base+"/api/estimate")
			},
		},
	}
}

func httpCase(name, method, url string, body any, okStatuses, pendingStatuses []int) TestCase {
	return TestCase{
		Name:  name,
		Focus: "HTTP API",
		Run: func(ctx context.Context, r *Runner) Result {
			start := time.Now()
			status, err := r.do(ctx, method, url, body, nil)
			latency := time.Since(start)
			if err != nil {
				return Result{Status: StatusFail, Note: err.Error()}
			}
			note := fmt.Sprintf("status=%d", status)
			switch {
			case contains(okStatuses, status):
				return Result{Status: StatusPass, Latency: latency, Note: note}
			case contains(pendingStatuses, status):
				return Result{Status: StatusPending, Latency: latency, Note: note}
			default:
				return Result{Status: StatusFail, Latency: latency, Note: note}
			}
		},
	}
}

func (r *Runner) postJSON(ctx context.Context, url string, body, out any) (int, error) {
	return r.do(ctx, http.MethodPost, url, body, out)
}

func (r *Runner) do(ctx context.Context, method, url string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, err
		}
		return resp.StatusCode, nil
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

// perfLoad cycles through every catalog municipality from Concurrency workers until Duration elapses.
func perfLoad(ctx context.Context, r *Runner, url string) Result {
	catalog, err := location.DefaultCatalog()
	if err != nil {
		return Result{Status: StatusFail, Note: err.Error()}
	}
	payloads := make([]map[string]any, 0, len(catalog.Municipalities))
	for i, m := range catalog.Municipalities {
		payloads = append(payloads, map[string]any{
			"latitude":      m.Lat,
			"longitude":     m.Lng,
			"municipality":  m.Name,
			"barangay":      m.Barangays[0],
			"postal_code":   m.PostalCode,
			"order_size":    1 + i%50,
			"time_of_order": i % 24,
			"day_of_week":   i % 7,
		})
	}

	end := time.Now().Add(r.cfg.Duration)
	var count, errCount atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < r.cfg.Concurrency; w++ {
		g.Go(func() error {
			for i := w; time.Now().Before(end) && ctx.Err() == nil; i++ {
				status, err := r.do(ctx, http.MethodPost, url, payloads[i%len(payloads)], nil)
				if err != nil || status != http.StatusOK {
					errCount.Add(1)
					continue
				}
				count.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	if count.Load() == 0 {
		return Result{Status: StatusFail, Note: "no requests completed"}
	}
	rps := float64(count.Load()) / r.cfg.Duration.Seconds()
	return Result{Status: StatusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount.Load())}
}

func contains(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
