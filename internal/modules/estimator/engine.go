// README: Inference engine; model prediction with a deterministic fallback, then pricing.
package estimator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"deliveryeta/internal/config"
	"deliveryeta/internal/metrics"
	"deliveryeta/internal/modules/artifact"
	"deliveryeta/internal/modules/location"
	"deliveryeta/internal/types"
)

type Engine struct {
	tariff config.Tariff
	loader *Loader
	pricer Pricer
	log    *zap.Logger

	cache    Cache
	recorder Recorder
}

type Option func(*Engine)

func WithCache(c Cache) Option {
	return func(e *Engine) { e.cache = c }
}

func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

func NewEngine(tariff config.Tariff, loader *Loader, pricer Pricer, log *zap.Logger, opts ...Option) *Engine {
	e := &Engine{tariff: tariff, loader: loader, pricer: pricer, log: log.Named("estimator")}
	for _, o := range opts {
		o(e)
	}
	return e
}

// failure labels a primary path failure for logs and metrics.
type failure struct {
	reason string
	err    error
}

func (f *failure) Error() string { return f.reason + ": " + f.err.Error() }
func (f *failure) Unwrap() error { return f.err }

// Estimate validates req and returns delivery time and fee. Only an invalid
// request is an error; every model-side problem is answered by Fallback.
func (e *Engine) Estimate(ctx context.Context, req Request) (Estimate, error) {
	start := time.Now()
	q, err := req.Normalize()
	if err != nil {
		return Estimate{}, err
	}
	distance := location.Distance(e.tariff.Hub, q.Point)

	a, err := e.loader.Load(ctx)
	if err != nil {
		return e.finish(ctx, start, q, e.fallback(q, distance, &failure{reason: "unavailable", err: err}), "")
	}

	key := cacheKey(a, q)
	if est, ok := e.cached(ctx, key); ok {
		e.record(ctx, q, est)
		return est, nil
	}

	minutes, unseen, err := e.predict(a, q, distance)
	for _, c := range unseen {
		metrics.UnseenCategories.WithLabelValues(c).Inc()
	}
	if err != nil {
		est := e.fallback(q, distance, err)
		est.Unseen = unseen
		return e.finish(ctx, start, q, est, "")
	}
	est := Estimate{
		DistanceKm: distance,
		Minutes:    minutes,
		Source:     SourceModel,
		ModelType:  a.Metadata.ModelType,
		Unseen:     unseen,
	}
	return e.finish(ctx, start, q, est, key)
}

func (e *Engine) predict(a *artifact.Artifact, q Query, distance float64) (minutes float64, unseen []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &failure{reason: "panic", err: fmt.Errorf("model panicked: %v", r)}
		}
	}()

	f := artifact.Features{
		DistanceKm:  distance,
		Latitude:    q.Point.Lat,
		Longitude:   q.Point.Lng,
		TimeOfOrder: q.TimeOfOrder,
		DayOfWeek:   q.DayOfWeek,
		OrderSize:   q.OrderSize,
	}
	unseen = artifact.EncodeCategories(a.Encoding, &f, artifact.Categories{
		Municipality: q.Municipality,
		Barangay:     q.Barangay,
		PostalCode:   q.PostalCode,
	})
	x, err := f.Vector(a.Metadata.FeatureColumns)
	if err != nil {
		return 0, unseen, &failure{reason: "features", err: err}
	}
	v, err := a.Model.Predict(x)
	if err != nil {
		return 0, unseen, &failure{reason: "predict", err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, unseen, &failure{reason: "non_finite", err: fmt.Errorf("prediction %v", v)}
	}
	return types.Round(math.Max(e.tariff.MinMinutes, v), 2), unseen, nil
}

func (e *Engine) fallback(q Query, distance float64, cause error) Estimate {
	reason := "unknown"
	var f *failure
	if errors.As(cause, &f) {
		reason = f.reason
	}
	metrics.ModelFailures.WithLabelValues(reason).Inc()
	if reason != "unavailable" {
		e.log.Warn("model path failed, using fallback", zap.String("reason", reason), zap.Error(cause))
	} else {
		e.log.Debug("no model loaded, using fallback", zap.Error(cause))
	}
	return Estimate{
		DistanceKm: distance,
		Minutes:    Fallback(e.tariff, distance, q.OrderSize),
		Source:     SourceFallback,
	}
}

// finish prices est, records it and stores it under key when key is set.
func (e *Engine) finish(ctx context.Context, start time.Time, q Query, est Estimate, key string) (Estimate, error) {
	est.DistanceKm = types.Round(est.DistanceKm, 2)
	est.Hours = types.Round(est.Minutes/60, 2)
	est.Fee = e.pricer.Fee(est.Minutes)

	metrics.Estimates.WithLabelValues(est.Source).Inc()
	metrics.EstimateDuration.WithLabelValues(est.Source).Observe(time.Since(start).Seconds())
	e.log.Debug("estimate",
		zap.String("source", est.Source),
		zap.String("model_type", est.ModelType),
		zap.Float64("distance_km", est.DistanceKm),
		zap.Float64("minutes", est.Minutes),
		zap.Float64("fee", est.Fee.Amount),
	)

	e.record(ctx, q, est)
	if key != "" && e.cache != nil {
		if err := e.cache.Set(ctx, key, est); err != nil {
			e.log.Warn("cache estimate", zap.Error(err))
		}
	}
	return est, nil
}

func (e *Engine) record(ctx context.Context, q Query, est Estimate) {
	if e.recorder == nil {
		return
	}
	if err := e.recorder.Record(ctx, q, est); err != nil {
		e.log.Warn("record estimate", zap.Error(err))
	}
}

func (e *Engine) cached(ctx context.Context, key string) (Estimate, bool) {
	if e.cache == nil {
		return Estimate{}, false
	}
	est, ok, err := e.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.CacheLookups.WithLabelValues("error").Inc()
		e.log.Warn("estimate cache lookup", zap.Error(err))
		return Estimate{}, false
	case !ok:
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return Estimate{}, false
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	metrics.Estimates.WithLabelValues(est.Source).Inc()
	return est, true
}

// Model returns the loaded artifact metadata, loading it if needed.
func (e *Engine) Model(ctx context.Context) (artifact.Metadata, error) {
	a, err := e.loader.Load(ctx)
	if err != nil {
		return artifact.Metadata{}, err
	}
	return a.Metadata, nil
}

func cacheKey(a *artifact.Artifact, q Query) string {
	data, _ := json.Marshal(q)
	sum := sha256.Sum256(data)
	return "eta:estimate:" + a.Version() + ":" + hex.EncodeToString(sum[:])
}
