// README: Dataset service generates a corpus and hands it to the configured store.
package dataset

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

type Service struct {
	gen   *Generator
	store Store
	log   *zap.Logger
}

func NewService(gen *Generator, store Store, log *zap.Logger) *Service {
	return &Service{gen: gen, store: store, log: log.Named("dataset")}
}

type Summary struct {
	Samples        int
	MeanDistanceKm float64
	MeanMinutes    float64
	MinMinutes     float64
	MaxMinutes     float64
}

func (s *Service) Generate(ctx context.Context, n int) (Summary, error) {
	if n <= 0 {
		return Summary{}, errors.New("sample count must be positive")
	}
	rows := s.gen.Generate(n)
	if err := s.store.Write(ctx, rows); err != nil {
		return Summary{}, fmt.Errorf("generate dataset: %w", err)
	}

	sum := Summarize(rows)
	s.log.Info("dataset generated",
		zap.Int("samples", sum.Samples),
		zap.Float64("mean_distance_km", sum.MeanDistanceKm),
		zap.Float64("mean_minutes", sum.MeanMinutes),
		zap.Float64("min_minutes", sum.MinMinutes),
		zap.Float64("max_minutes", sum.MaxMinutes),
	)
	return sum, nil
}

func Summarize(rows []Observation) Summary {
	if len(rows) == 0 {
		return Summary{}
	}
	sum := Summary{
		Samples:    len(rows),
		MinMinutes: rows[0].DeliveryTimeMinutes,
		MaxMinutes: rows[0].DeliveryTimeMinutes,
	}
	var dist, minutes float64
	for _, o := range rows {
		dist += o.DistanceKm
		minutes += o.DeliveryTimeMinutes
		sum.MinMinutes = min(sum.MinMinutes, o.DeliveryTimeMinutes)
		sum.MaxMinutes = max(sum.MaxMinutes, o.DeliveryTimeMinutes)
	}
	sum.MeanDistanceKm = dist / float64(len(rows))
	sum.MeanMinutes = minutes / float64(len(rows))
	return sum
}
