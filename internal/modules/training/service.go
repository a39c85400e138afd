// README: Training service; reads the corpus, fits both candidates, keeps the better one.
package training

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"deliveryeta/internal/modules/artifact"
	"deliveryeta/internal/modules/category"
	"deliveryeta/internal/modules/dataset"
	"deliveryeta/internal/modules/regression"
)

type Service struct {
	data   dataset.Store
	models artifact.Store
	params Params
	log    *zap.Logger
	now    func() time.Time
}

func NewService(data dataset.Store, models artifact.Store, params Params, log *zap.Logger) *Service {
	return &Service{data: data, models: models, params: params, log: log.Named("training"), now: time.Now}
}

// Train runs one full training pass and persists the selected model.
func (s *Service) Train(ctx context.Context) (Report, error) {
	rows, err := s.data.Read(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("train: read corpus: %w", err)
	}
	if len(rows) == 0 {
		return Report{}, fmt.Errorf("train: %w", dataset.ErrEmptyCorpus)
	}

	enc := FitEncoding(rows)
	X, y, err := Prepare(rows, enc, artifact.FeatureColumns)
	if err != nil {
		return Report{}, fmt.Errorf("train: %w", err)
	}
	trainIdx, testIdx := Split(len(rows), s.params.TestFraction, s.params.Seed)
	if len(testIdx) == 0 {
		return Report{}, fmt.Errorf("train: corpus of %d rows too small to hold out a test set: %w", len(rows), dataset.ErrEmptyCorpus)
	}
	Xtr, ytr := subset(X, y, trainIdx)
	Xte, yte := subset(X, y, testIdx)
	s.log.Info("training started",
		zap.Int("train_rows", len(trainIdx)),
		zap.Int("test_rows", len(testIdx)),
		zap.Int("categories_municipality", enc[category.ColumnMunicipality].Len()),
		zap.Int("categories_barangay", enc[category.ColumnBarangay].Len()),
	)

	linear, err := regression.FitLinear(Xtr, ytr)
	if err != nil {
		return Report{}, fmt.Errorf("train: linear: %w", err)
	}
	forest, err := regression.FitForest(ctx, Xtr, ytr, s.params.Forest)
	if err != nil {
		return Report{}, fmt.Errorf("train: forest: %w", err)
	}

	// Linear first: Select keeps the earlier candidate on ties.
	var candidates []Candidate
	for _, m := range []regression.Regressor{linear, forest} {
		metrics, err := regression.Evaluate(m, Xte, yte)
		if err != nil {
			return Report{}, fmt.Errorf("train: evaluate %s: %w", m.Kind(), err)
		}
		s.log.Info("candidate evaluated",
			zap.String("model_type", m.Kind()),
			zap.Float64("mae", metrics.MAE),
			zap.Float64("rmse", metrics.RMSE),
			zap.Float64("r2", metrics.R2),
		)
		candidates = append(candidates, Candidate{Type: m.Kind(), Model: m, Metrics: metrics})
	}

	best, err := Select(candidates)
	if err != nil {
		return Report{}, fmt.Errorf("train: %w", err)
	}
	a := &artifact.Artifact{
		Model:    best.Model,
		Encoding: enc,
		Metadata: artifact.Metadata{
			ModelType:          best.Type,
			FeatureColumns:     artifact.FeatureColumns,
			Metrics:            best.Metrics,
			CategoricalColumns: category.Columns,
			TrainedAt:          s.now().UTC(),
			Samples:            len(rows),
		},
	}
	if err := s.models.Save(ctx, a); err != nil {
		return Report{}, fmt.Errorf("train: save model: %w", err)
	}
	s.log.Info("model selected", zap.String("model_type", best.Type), zap.Float64("r2", best.Metrics.R2))

	return Report{
		Selected:   best,
		Candidates: candidates,
		TrainRows:  len(trainIdx),
		TestRows:   len(testIdx),
	}, nil
}

// IsMissingCorpus reports whether err means there is nothing to train on.
func IsMissingCorpus(err error) bool {
	return errors.Is(err, dataset.ErrEmptyCorpus) || errors.Is(err, dataset.ErrNotFound)
}
